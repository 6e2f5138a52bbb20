package vl6180x

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned by the blocking reads when the poll budget is
	// exhausted before a new result is flagged
	ErrTimeout = errors.New("vl6180x: timeout waiting for result")

	// ErrResultNotReady is returned by the non-blocking reads when no event is
	// flagged for the channel
	ErrResultNotReady = errors.New("vl6180x: result not ready")

	// ErrNotReady is returned when a measurement is requested before the
	// device has completed initialization
	ErrNotReady = errors.New("vl6180x: device not initialized")

	// ErrNilConfig is returned by Reconfigure when given no Config
	ErrNilConfig = errors.New("vl6180x: nil configuration")
)

// InvalidConfigurationValueError is returned by a Config setter rejecting a
// value. The Config is left unchanged.
type InvalidConfigurationValueError struct {
	Field string
	Value uint16
}

func (e *InvalidConfigurationValueError) Error() string {
	return fmt.Sprintf("vl6180x: invalid %s value %d", e.Field, e.Value)
}

// InvalidAddressError is returned when re-addressing outside 0x08-0x77
type InvalidAddressError struct {
	Address uint8
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("vl6180x: invalid I2C address 0x%02X", e.Address)
}

// UnknownRegisterCodeError is returned when a status register holds a value
// that has no documented meaning
type UnknownRegisterCodeError struct {
	Register uint16
	Code     uint8
}

func (e *UnknownRegisterCodeError) Error() string {
	return fmt.Sprintf("vl6180x: unknown code 0x%02X in register 0x%03X",
		e.Code, e.Register)
}

// RangeStatusError is returned when the device reports a range error
type RangeStatusError struct {
	Code RangeStatusErrorCode
}

func (e *RangeStatusError) Error() string {
	return fmt.Sprintf("vl6180x: range status error: %s", e.Code)
}

// AmbientStatusError is returned when the device reports an ambient light
// error
type AmbientStatusError struct {
	Code AmbientStatusErrorCode
}

func (e *AmbientStatusError) Error() string {
	return fmt.Sprintf("vl6180x: ambient status error: %s", e.Code)
}

// BusError wraps a failed register transaction
type BusError struct {
	Register uint16
	Write    bool
	Err      error
}

func (e *BusError) Error() string {
	op := "read"

	if e.Write {
		op = "write"
	}

	return fmt.Sprintf("vl6180x: %s register 0x%03X: %v", op, e.Register, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// GpioPinError wraps a failure driving the shutdown pin
type GpioPinError struct {
	Err error
}

func (e *GpioPinError) Error() string {
	return fmt.Sprintf("vl6180x: shutdown pin: %v", e.Err)
}

func (e *GpioPinError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err means the result was not available yet, so
// the caller may try again later. Every other error is terminal for the
// operation that returned it.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrResultNotReady)
}
