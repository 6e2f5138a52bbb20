package vl6180x

import (
	"periph.io/x/conn/v3/i2c"
)

// PeriphBus implements Bus on a periph.io I2C bus
type PeriphBus struct {
	dev *i2c.Dev
}

// NewPeriphBus returns a Bus addressing the device at addr on bus
func NewPeriphBus(bus i2c.Bus, addr uint8) *PeriphBus {
	return &PeriphBus{dev: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}
}

// Read8 reads an 8-bit value from a 16-bit register
func (b *PeriphBus) Read8(reg uint16) (uint8, error) {
	r := make([]byte, 1)

	if err := b.dev.Tx([]byte{byte(reg >> 8), byte(reg)}, r); err != nil {
		return 0, err
	}

	return r[0], nil
}

// Read16 reads a 16-bit value from a 16-bit register
func (b *PeriphBus) Read16(reg uint16) (uint16, error) {
	r := make([]byte, 2)

	if err := b.dev.Tx([]byte{byte(reg >> 8), byte(reg)}, r); err != nil {
		return 0, err
	}

	return uint16(r[0])<<8 | uint16(r[1]), nil
}

// Write8 writes an 8-bit value to a 16-bit register
func (b *PeriphBus) Write8(reg uint16, val uint8) error {
	return b.dev.Tx([]byte{byte(reg >> 8), byte(reg), val}, nil)
}

// Write16 writes a 16-bit value to a 16-bit register
func (b *PeriphBus) Write16(reg uint16, val uint16) error {
	return b.dev.Tx([]byte{byte(reg >> 8), byte(reg), byte(val >> 8), byte(val)}, nil)
}

// Readdress points subsequent transactions at addr
func (b *PeriphBus) Readdress(addr uint8) error {
	b.dev.Addr = uint16(addr)
	return nil
}
