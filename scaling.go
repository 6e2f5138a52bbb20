package vl6180x

// SetRangeResultScaler changes the range scaling factor (1-3). On an
// initialized device the scaling dependent registers are rewritten
// immediately.
func (v *VL6180X) SetRangeResultScaler(scaler uint8) error {

	if err := v.config.SetRangeResultScaler(scaler); err != nil {
		return err
	}

	if v.state != StateReady {
		return nil
	}

	return v.setRangeScaling(scaler)
}

// setRangeScaling writes RANGE_SCALER and rescales the part-to-part offset
// and crosstalk valid height for the new factor. Early convergence estimate
// is enabled only at 1x. RANGE_IGNORE_VALID_HEIGHT is not rescaled.
func (v *VL6180X) setRangeScaling(scaler uint8) error {

	v.log.Printf("Range scaling %dx", scaler)

	if err := v.writeReg16Bit(RANGE_SCALER, rangeScalarCode[scaler]); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_PART_TO_PART_RANGE_OFFSET, v.config.ptpOffset/scaler); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_CROSSTALK_VALID_HEIGHT, defaultCrosstalkValidHeight/scaler); err != nil {
		return err
	}

	rce, err := v.readReg(SYSRANGE_RANGE_CHECK_ENABLES)

	if err != nil {
		return err
	}

	rce &^= rangeCheckEarlyConvergence

	if scaler == 1 {
		rce |= rangeCheckEarlyConvergence
	}

	return v.writeReg(SYSRANGE_RANGE_CHECK_ENABLES, rce)
}
