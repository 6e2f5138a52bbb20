package vl6180x

import (
	"fmt"

	"github.com/swdee/go-i2c"
)

// I2CBus implements Bus on a Linux i2c-dev connection
type I2CBus struct {
	conn *i2c.Options
}

// NewI2CBus wraps an open go-i2c connection
func NewI2CBus(conn *i2c.Options) (*I2CBus, error) {

	if conn.GetAddr() == 0 {
		return nil, fmt.Errorf("I2C device is not initiated")
	}

	return &I2CBus{conn: conn}, nil
}

// Read8 reads an 8-bit value from a 16-bit register
func (b *I2CBus) Read8(reg uint16) (uint8, error) {

	buf, err := b.read(reg, 1)

	if err != nil {
		return 0, err
	}

	return buf[0], nil
}

// Read16 reads a 16-bit value from a 16-bit register
func (b *I2CBus) Read16(reg uint16) (uint16, error) {

	buf, err := b.read(reg, 2)

	if err != nil {
		return 0, err
	}

	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// Write8 writes an 8-bit value to a 16-bit register
func (b *I2CBus) Write8(reg uint16, val uint8) error {

	buf := []byte{byte(reg >> 8), byte(reg), val}
	_, err := b.conn.WriteBytes(buf)

	return err
}

// Write16 writes a 16-bit value to a 16-bit register
func (b *I2CBus) Write16(reg uint16, val uint16) error {

	buf := []byte{byte(reg >> 8), byte(reg), byte(val >> 8), byte(val)}
	_, err := b.conn.WriteBytes(buf)

	return err
}

// Readdress reopens the I2C connection at a new address
func (b *I2CBus) Readdress(addr uint8) error {

	conn, err := i2c.New(addr, b.conn.GetDev())

	if err != nil {
		return err
	}

	// close existing connection
	b.conn.Close()

	b.conn = conn
	return nil
}

// Close closes the underlying I2C connection
func (b *I2CBus) Close() error {
	return b.conn.Close()
}

// read writes the register address then reads n bytes
func (b *I2CBus) read(reg uint16, n int) ([]byte, error) {

	addr := []byte{byte(reg >> 8), byte(reg)}

	if _, err := b.conn.WriteBytes(addr); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	got, err := b.conn.ReadBytes(buf)

	if err != nil {
		return nil, err
	}

	if got < n {
		return nil, fmt.Errorf("read 0x%03X: insufficient data", reg)
	}

	return buf, nil
}
