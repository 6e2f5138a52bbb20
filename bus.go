package vl6180x

// Bus is the register level access the driver needs. Register addresses are
// 16 bits wide and multi-byte values are big-endian.
type Bus interface {
	Read8(reg uint16) (uint8, error)
	Read16(reg uint16) (uint16, error)
	Write8(reg uint16, val uint8) error
	Write16(reg uint16, val uint16) error
}

// Readdresser is implemented by a Bus that can follow the device to a new I2C
// address after I2C_SLAVE_DEVICE_ADDRESS has been written
type Readdresser interface {
	Readdress(addr uint8) error
}

// readReg reads an 8-bit register, wrapping failures in *BusError
func (v *VL6180X) readReg(reg uint16) (uint8, error) {
	val, err := v.bus.Read8(reg)

	if err != nil {
		return 0, &BusError{Register: reg, Err: err}
	}

	return val, nil
}

// readReg16Bit reads a 16-bit register, wrapping failures in *BusError
func (v *VL6180X) readReg16Bit(reg uint16) (uint16, error) {
	val, err := v.bus.Read16(reg)

	if err != nil {
		return 0, &BusError{Register: reg, Err: err}
	}

	return val, nil
}

// writeReg writes an 8-bit register, wrapping failures in *BusError
func (v *VL6180X) writeReg(reg uint16, val uint8) error {
	if err := v.bus.Write8(reg, val); err != nil {
		return &BusError{Register: reg, Write: true, Err: err}
	}

	return nil
}

// writeReg16Bit writes a 16-bit register, wrapping failures in *BusError
func (v *VL6180X) writeReg16Bit(reg uint16, val uint16) error {
	if err := v.bus.Write16(reg, val); err != nil {
		return &BusError{Register: reg, Write: true, Err: err}
	}

	return nil
}
