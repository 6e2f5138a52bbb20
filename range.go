package vl6180x

// ReadRangeMM returns the latest range in millimeters if the range interrupt
// reports a new event, otherwise ErrResultNotReady
func (v *VL6180X) ReadRangeMM() (uint16, error) {
	return v.readRange(false)
}

// ReadRangeMMBlocking polls the interrupt status up to the configured poll
// budget for a range event and returns the range in millimeters. ErrTimeout
// is returned when the budget runs out.
func (v *VL6180X) ReadRangeMMBlocking() (uint16, error) {
	return v.readRange(true)
}

// ReadRangeSingleMillimeters performs a single-shot range measurement and
// returns the reading in millimeters
func (v *VL6180X) ReadRangeSingleMillimeters() (uint16, error) {

	if err := v.StartRangeSingle(); err != nil {
		return 0, err
	}

	return v.readRange(true)
}

func (v *VL6180X) readRange(blocking bool) (uint16, error) {

	if err := v.requireReady(); err != nil {
		return 0, err
	}

	if err := v.waitEvent(NoRangeEvents, blocking); err != nil {
		return 0, err
	}

	return v.fetchRange()
}

// fetchRange reads and decodes RESULT_RANGE_STATUS then RESULT_RANGE_VAL. The
// range interrupt is cleared whatever the status.
func (v *VL6180X) fetchRange() (uint16, error) {

	status, err := v.readReg(RESULT_RANGE_STATUS)

	if err != nil {
		return 0, err
	}

	if err := v.ClearRangeInterrupt(); err != nil {
		return 0, err
	}

	if _, err := DecodeRangeStatus(status); err != nil {
		return 0, err
	}

	raw, err := v.readReg(RESULT_RANGE_VAL)

	if err != nil {
		return 0, err
	}

	return RawRangeToMillimeters(raw, v.config.rangeScaling), nil
}

// waitEvent checks the interrupt status for an event of the given class. In
// blocking mode it re-polls without delay until the event shows up or
// pollMaxLoop polls have missed it.
func (v *VL6180X) waitEvent(none InterruptStatusCode, blocking bool) error {

	var c uint16

	for {
		status, err := v.ReadInterruptStatus()

		if err != nil {
			return err
		}

		if !status.Has(none) {
			return nil
		}

		if !blocking {
			return ErrResultNotReady
		}

		c++

		if c >= v.config.pollMaxLoop {
			v.log.Printf("No event after %d polls", c)
			return ErrTimeout
		}
	}
}
