// go-vl6180x is an I2C driver for the ST VL6180X time-of-flight ranging and
// ambient light sensor.
package vl6180x

import (
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
)

const (
	// Address is the default address of the sensor on I2C bus
	Address uint8 = 0x29

	// MinAddress and MaxAddress bound the addresses ChangeAddress accepts
	MinAddress uint8 = 0x08
	MaxAddress uint8 = 0x77
)

// State is the bring-up phase of the device
type State int

const (
	// StateOff means the shutdown pin is held low or power state is unknown
	StateOff State = iota
	// StateBooting means the device is powered and has not reported boot
	StateBooting
	// StatePrivateRegistersLoaded means the mandatory private settings are
	// written
	StatePrivateRegistersLoaded
	// StateConfigured means the Config has been written to the device
	StateConfigured
	// StateReady means measurements can be taken
	StateReady
)

// String implement Stringer interface for State
func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateBooting:
		return "booting"
	case StatePrivateRegistersLoaded:
		return "private registers loaded"
	case StateConfigured:
		return "configured"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// ShutdownPin drives the GPIO0/CE (xshut) line. Any periph gpio.PinOut
// satisfies it.
type ShutdownPin interface {
	Out(l gpio.Level) error
}

// Identification holds the IDENTIFICATION_* registers
type Identification struct {
	Model          uint8
	ModelRevMajor  uint8
	ModelRevMinor  uint8
	ModuleRevMajor uint8
	ModuleRevMinor uint8
	Date           uint16
	Time           uint16
}

// VL6180X represents a single VL6180X sensor instance. It is not safe for
// concurrent use; callers sharing a device must serialize access.
type VL6180X struct {
	// bus is the register interface
	bus Bus

	config Config
	state  State

	// log logger for debugging
	log *log.Logger
}

// New returns a VL6180X on an already powered sensor and initializes it with
// the given Config. A nil cfg uses NewConfig().
func New(bus Bus, cfg *Config) (*VL6180X, error) {

	v := newDevice(bus, cfg)

	return v, v.setup()
}

// NewWithLog creates sensor instance with logger to be used for debugging and
// initializes it
func NewWithLog(bus Bus, cfg *Config, log *log.Logger) (*VL6180X, error) {

	v := newDevice(bus, cfg)

	// set logger
	if log != nil {
		v.log = log
	}

	return v, v.setup()
}

// NewPoweredOff returns a VL6180X without touching the bus. Bring it up with
// PowerOnAndInit. A nil log discards debug output.
func NewPoweredOff(bus Bus, cfg *Config, logger *log.Logger) *VL6180X {

	v := newDevice(bus, cfg)

	if logger != nil {
		v.log = logger
	}

	return v
}

// newDevice returns a new VL6180X instance owning a copy of cfg
func newDevice(bus Bus, cfg *Config) *VL6180X {

	if cfg == nil {
		cfg = NewConfig()
	}

	return &VL6180X{
		bus:    bus,
		config: *cfg,
		state:  StateOff,
		// create null logger
		log: log.New(io.Discard, "", log.LstdFlags),
	}
}

// setup completes New instance creation and is a common function for New() and
// NewWithLog()
func (v *VL6180X) setup() error {

	v.log.Printf("Starting Setup()")

	// a sensor handed to New is assumed to be powered
	v.state = StateBooting

	if err := v.Init(); err != nil {
		return err
	}

	v.log.Printf("Device Init()'d")

	return nil
}

// State returns the current bring-up phase
func (v *VL6180X) State() State {
	return v.state
}

// Config returns a copy of the configuration in use
func (v *VL6180X) Config() Config {
	return v.config
}

// requireReady gates operations needing an initialized device
func (v *VL6180X) requireReady() error {
	if v.state != StateReady {
		return ErrNotReady
	}
	return nil
}

// PowerOff drives the shutdown pin low
func (v *VL6180X) PowerOff(pin ShutdownPin) error {

	if err := pin.Out(gpio.Low); err != nil {
		return &GpioPinError{Err: err}
	}

	v.log.Printf("Powered off")
	v.state = StateOff

	return nil
}

// PowerOn drives the shutdown pin high. The device still needs Init.
func (v *VL6180X) PowerOn(pin ShutdownPin) error {

	if err := pin.Out(gpio.High); err != nil {
		return &GpioPinError{Err: err}
	}

	v.log.Printf("Powered on")
	v.state = StateBooting

	return nil
}

// PowerOnAndInit powers the device through the shutdown pin and initializes
// it. On failure the device is left in an undefined state; retry from
// PowerOff.
func (v *VL6180X) PowerOnAndInit(pin ShutdownPin) error {

	if err := v.PowerOn(pin); err != nil {
		return err
	}

	return v.Init()
}

// ChangeAddress moves the sensor to a new I2C address. The address must be in
// 0x08-0x77. When the Bus implements Readdresser it is switched over too.
func (v *VL6180X) ChangeAddress(newAddr uint8) error {

	if newAddr < MinAddress || newAddr > MaxAddress {
		return &InvalidAddressError{Address: newAddr}
	}

	if err := v.writeReg(I2C_SLAVE_DEVICE_ADDRESS, newAddr); err != nil {
		return err
	}

	v.config.address = newAddr

	if r, ok := v.bus.(Readdresser); ok {
		if err := r.Readdress(newAddr); err != nil {
			return err
		}
	}

	v.log.Printf("Address changed to 0x%02X", newAddr)

	return nil
}

// ReadModelID returns IDENTIFICATION_MODEL_ID, 0xB4 on a VL6180X
func (v *VL6180X) ReadModelID() (uint8, error) {
	return v.readReg(IDENTIFICATION_MODEL_ID)
}

// ReadIdentification reads the model, module revision and manufacture date
func (v *VL6180X) ReadIdentification() (Identification, error) {

	var id Identification
	var err error

	regs := []struct {
		reg uint16
		dst *uint8
	}{
		{IDENTIFICATION_MODEL_ID, &id.Model},
		{IDENTIFICATION_MODEL_REV_MAJOR, &id.ModelRevMajor},
		{IDENTIFICATION_MODEL_REV_MINOR, &id.ModelRevMinor},
		{IDENTIFICATION_MODULE_REV_MAJOR, &id.ModuleRevMajor},
		{IDENTIFICATION_MODULE_REV_MINOR, &id.ModuleRevMinor},
	}

	for _, r := range regs {
		if *r.dst, err = v.readReg(r.reg); err != nil {
			return Identification{}, err
		}
	}

	if id.Date, err = v.readReg16Bit(IDENTIFICATION_DATE_HI); err != nil {
		return Identification{}, err
	}

	if id.Time, err = v.readReg16Bit(IDENTIFICATION_TIME); err != nil {
		return Identification{}, err
	}

	return id, nil
}

// ReadInterruptStatus returns RESULT_INTERRUPT_STATUS_GPIO
func (v *VL6180X) ReadInterruptStatus() (InterruptStatus, error) {

	status, err := v.readReg(RESULT_INTERRUPT_STATUS_GPIO)

	return InterruptStatus(status), err
}

// ClearRangeInterrupt clears the range interrupt latch
func (v *VL6180X) ClearRangeInterrupt() error {
	return v.clearInterrupt(clearRange)
}

// ClearAmbientInterrupt clears the ambient interrupt latch
func (v *VL6180X) ClearAmbientInterrupt() error {
	return v.clearInterrupt(clearAmbient)
}

// ClearErrorInterrupt clears the error interrupt latch
func (v *VL6180X) ClearErrorInterrupt() error {
	return v.clearInterrupt(clearError)
}

// ClearAllInterrupts clears range, ambient and error latches in one write
func (v *VL6180X) ClearAllInterrupts() error {
	return v.clearInterrupt(clearRange | clearAmbient | clearError)
}

func (v *VL6180X) clearInterrupt(code interruptClearCode) error {
	return v.writeReg(SYSTEM_INTERRUPT_CLEAR, uint8(code))
}
