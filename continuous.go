package vl6180x

// StartRangeSingle triggers a single range measurement
func (v *VL6180X) StartRangeSingle() error {

	if err := v.requireReady(); err != nil {
		return err
	}

	return v.writeReg(SYSRANGE_START, startStop)
}

// StartAmbientSingle triggers a single ambient light measurement
func (v *VL6180X) StartAmbientSingle() error {

	if err := v.requireReady(); err != nil {
		return err
	}

	return v.writeReg(SYSALS_START, startStop)
}

// StartRangeContinuous starts range measurements every configured range
// inter-measurement period
func (v *VL6180X) StartRangeContinuous() error {

	if err := v.requireReady(); err != nil {
		return err
	}

	v.log.Print("Start range continuous mode")

	return v.writeReg(SYSRANGE_START, startContinuous)
}

// StartAmbientContinuous starts ambient measurements every configured
// ambient inter-measurement period
func (v *VL6180X) StartAmbientContinuous() error {

	if err := v.requireReady(); err != nil {
		return err
	}

	v.log.Print("Start ambient continuous mode")

	return v.writeReg(SYSALS_START, startContinuous)
}

// StartInterleavedContinuous starts interleaved mode where each ambient
// measurement is immediately followed by a range measurement, paced by the
// ambient inter-measurement period. The datasheet recommends this over
// running both continuous modes asynchronously.
func (v *VL6180X) StartInterleavedContinuous() error {

	if err := v.requireReady(); err != nil {
		return err
	}

	if err := v.config.ValidateInterleaved(); err != nil {
		return err
	}

	v.log.Print("Start interleaved continuous mode")

	if err := v.writeReg(INTERLEAVED_MODE_ENABLE, 0x01); err != nil {
		return err
	}

	return v.writeReg(SYSALS_START, startContinuous)
}

// StopRangeContinuous stops range continuous mode. Outside continuous mode
// this starts a single measurement instead.
func (v *VL6180X) StopRangeContinuous() error {

	v.log.Print("Stop range continuous mode")

	return v.writeReg(SYSRANGE_START, startStop)
}

// StopAmbientContinuous stops ambient or interleaved continuous mode and
// disables interleaving. Outside continuous mode this starts a single
// measurement instead.
func (v *VL6180X) StopAmbientContinuous() error {

	v.log.Print("Stop ambient continuous mode")

	if err := v.writeReg(SYSALS_START, startStop); err != nil {
		return err
	}

	return v.writeReg(INTERLEAVED_MODE_ENABLE, 0x00)
}

// Reconfigure writes a new Config to an initialized device. The factory
// offset captured at Init and the current bus address are kept. A nil cfg
// gives ErrNilConfig.
func (v *VL6180X) Reconfigure(cfg *Config) error {

	if err := v.requireReady(); err != nil {
		return err
	}

	if cfg == nil {
		return ErrNilConfig
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	next := *cfg
	next.ptpOffset = v.config.ptpOffset
	next.address = v.config.address
	v.config = next

	return v.applyConfiguration()
}
