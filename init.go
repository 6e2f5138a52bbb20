package vl6180x

import (
	"fmt"
)

// Init brings a powered sensor to StateReady using the sequence from ST
// application note AN4545, then writes the Config. A failure aborts the
// sequence without undoing earlier writes; retry from PowerOff. An invalid
// Config is rejected before any bus activity.
func (v *VL6180X) Init() error {

	if err := v.config.Validate(); err != nil {
		return err
	}

	if v.state == StateOff {
		v.state = StateBooting
	}

	v.waitDeviceBooted()

	v.log.Printf("Device booted")

	if err := v.loadPrivateRegisters(); err != nil {
		return fmt.Errorf("Error on loadPrivateRegisters(), %w", err)
	}

	v.state = StatePrivateRegistersLoaded

	if err := v.applyConfiguration(); err != nil {
		return fmt.Errorf("Error on applyConfiguration(), %w", err)
	}

	v.state = StateConfigured

	v.log.Printf("Configuration applied")

	v.state = StateReady

	return nil
}

// waitDeviceBooted polls SYSTEM_FRESH_OUT_OF_RESET until the device reports it
// has left reset. There is no timeout and read errors are retried, as the
// device NACKs while booting.
func (v *VL6180X) waitDeviceBooted() {

	for {
		val, err := v.bus.Read8(SYSTEM_FRESH_OUT_OF_RESET)

		if err == nil && val == freshOutOfReset {
			return
		}
	}
}

// loadPrivateRegisters stores the part-to-part range offset, writes the
// mandatory private registers and clears the fresh out of reset flag
func (v *VL6180X) loadPrivateRegisters() error {

	// the offset must be read before any scaling is applied to it
	ptp, err := v.readReg(SYSRANGE_PART_TO_PART_RANGE_OFFSET)

	if err != nil {
		return err
	}

	v.config.ptpOffset = ptp

	v.log.Printf("Part-to-part range offset %d", ptp)

	for _, r := range privateRegisters {
		if err := v.writeReg(r.reg, r.val); err != nil {
			return err
		}
	}

	return v.writeReg(SYSTEM_FRESH_OUT_OF_RESET, 0x00)
}

// applyConfiguration writes every Config field to its register. See the
// VL6180X datasheet and AN4545 for the value transformations.
func (v *VL6180X) applyConfiguration() error {

	c := &v.config

	if err := v.writeReg(READOUT_AVERAGING_SAMPLE_PERIOD, c.readoutAveragingPeriodMultiplier); err != nil {
		return err
	}

	if err := v.writeReg(SYSALS_ANALOGUE_GAIN, ambientAnalogueGainCode[c.ambientAnalogueGainLevel]); err != nil {
		return err
	}

	if err := v.writeReg(FIRMWARE_RESULT_SCALER, c.ambientScaling); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_VHV_REPEAT_RATE, c.rangeVHVRecalibrationRate); err != nil {
		return err
	}

	if err := v.writeReg16Bit(SYSALS_INTEGRATION_PERIOD, c.ambientIntegrationPeriod-1); err != nil {
		return err
	}

	if err := v.writeReg(SYSALS_INTERMEASUREMENT_PERIOD, periodCode(c.ambientInterMeasurementPeriod)); err != nil {
		return err
	}

	// manually trigger a range VHV recalibration
	if err := v.writeReg(SYSRANGE_VHV_RECALIBRATE, 0x01); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_INTERMEASUREMENT_PERIOD, periodCode(c.rangeInterMeasurementPeriod)); err != nil {
		return err
	}

	if err := v.setInterrupts(); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_MAX_CONVERGENCE_TIME, c.rangeMaxConvergenceTime); err != nil {
		return err
	}

	// disable interleaved mode
	if err := v.writeReg(INTERLEAVED_MODE_ENABLE, 0x00); err != nil {
		return err
	}

	return v.setRangeScaling(c.rangeScaling)
}

// periodCode converts an inter-measurement period in ms to its register
// value, in units of 10ms minus one
func periodCode(ms uint16) uint8 {
	return uint8(ms/10) - 1
}

// setInterrupts writes the interrupt modes, GPIO1 function and thresholds
func (v *VL6180X) setInterrupts() error {

	c := &v.config

	mode := uint8(c.rangeInterruptMode) | uint8(c.ambientInterruptMode)

	if err := v.writeReg(SYSTEM_INTERRUPT_CONFIG_GPIO, mode); err != nil {
		return err
	}

	// GPIO1 is an interrupt output only when some interrupt is enabled
	gpio1 := gpio1PolarityActiveHigh | gpio1SelectOff

	if mode != 0x00 {
		gpio1 = gpio1PolarityActiveHigh | gpio1SelectInterruptOutput
	}

	if err := v.writeReg(SYSTEM_MODE_GPIO1, gpio1); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_THRESH_HIGH, c.rangeHighInterruptThreshold); err != nil {
		return err
	}

	if err := v.writeReg(SYSRANGE_THRESH_LOW, c.rangeLowInterruptThreshold); err != nil {
		return err
	}

	if err := v.writeReg16Bit(SYSALS_THRESH_HIGH, c.ambientHighInterruptThreshold); err != nil {
		return err
	}

	return v.writeReg16Bit(SYSALS_THRESH_LOW, c.ambientLowInterruptThreshold)
}
