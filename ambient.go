package vl6180x

// ReadAmbientLux returns the latest ambient light level in lux if the ambient
// interrupt reports a new event, otherwise ErrResultNotReady
func (v *VL6180X) ReadAmbientLux() (float32, error) {
	return v.readLux(false)
}

// ReadAmbientLuxBlocking polls up to the configured poll budget for an
// ambient event and returns the level in lux
func (v *VL6180X) ReadAmbientLuxBlocking() (float32, error) {
	return v.readLux(true)
}

// ReadAmbient returns the latest raw ambient count, non-blocking
func (v *VL6180X) ReadAmbient() (uint16, error) {
	return v.readAmbient(false)
}

// ReadAmbientBlocking returns the raw ambient count, polling up to the
// configured poll budget
func (v *VL6180X) ReadAmbientBlocking() (uint16, error) {
	return v.readAmbient(true)
}

// ReadAmbientSingleLux performs a single-shot ambient light measurement and
// returns the reading in lux
func (v *VL6180X) ReadAmbientSingleLux() (float32, error) {

	if err := v.StartAmbientSingle(); err != nil {
		return 0, err
	}

	return v.readLux(true)
}

func (v *VL6180X) readLux(blocking bool) (float32, error) {

	raw, err := v.readAmbient(blocking)

	if err != nil {
		return 0, err
	}

	return RawAmbientToLux(raw, v.config.ambientAnalogueGainLevel,
		v.config.ambientIntegrationPeriod), nil
}

func (v *VL6180X) readAmbient(blocking bool) (uint16, error) {

	if err := v.requireReady(); err != nil {
		return 0, err
	}

	if err := v.waitEvent(NoAmbientEvents, blocking); err != nil {
		return 0, err
	}

	return v.fetchAmbient()
}

// fetchAmbient reads and decodes RESULT_ALS_STATUS then RESULT_ALS_VAL. The
// ambient interrupt is cleared whatever the status.
func (v *VL6180X) fetchAmbient() (uint16, error) {

	status, err := v.readReg(RESULT_ALS_STATUS)

	if err != nil {
		return 0, err
	}

	if err := v.ClearAmbientInterrupt(); err != nil {
		return 0, err
	}

	if _, err := DecodeAmbientStatus(status); err != nil {
		return 0, err
	}

	return v.readReg16Bit(RESULT_ALS_VAL)
}
