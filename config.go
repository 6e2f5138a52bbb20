package vl6180x

import "fmt"

// RangeInterruptMode is the trigger condition for the range interrupt. The
// value is the bit pattern of SYSTEM_INTERRUPT_CONFIG_GPIO bits 2:0.
type RangeInterruptMode uint8

const (
	// RangeInterruptDisabled triggers no interrupts
	RangeInterruptDisabled RangeInterruptMode = 0b00_000_000
	// RangeInterruptLevelLow triggers when value < thresh_low
	RangeInterruptLevelLow RangeInterruptMode = 0b00_000_001
	// RangeInterruptLevelHigh triggers when value > thresh_high
	RangeInterruptLevelHigh RangeInterruptMode = 0b00_000_010
	// RangeInterruptOutOfWindow triggers when value < thresh_low or
	// value > thresh_high
	RangeInterruptOutOfWindow RangeInterruptMode = 0b00_000_011
	// RangeInterruptNewSampleReady triggers on every new sample (default)
	RangeInterruptNewSampleReady RangeInterruptMode = 0b00_000_100
)

// AmbientInterruptMode is the trigger condition for the ambient interrupt.
// The value is the bit pattern of SYSTEM_INTERRUPT_CONFIG_GPIO bits 5:3.
type AmbientInterruptMode uint8

const (
	AmbientInterruptDisabled       AmbientInterruptMode = 0b00_000_000
	AmbientInterruptLevelLow       AmbientInterruptMode = 0b00_001_000
	AmbientInterruptLevelHigh      AmbientInterruptMode = 0b00_010_000
	AmbientInterruptOutOfWindow    AmbientInterruptMode = 0b00_011_000
	AmbientInterruptNewSampleReady AmbientInterruptMode = 0b00_100_000
)

func (m RangeInterruptMode) String() string {
	return interruptModeName(uint8(m))
}

func (m AmbientInterruptMode) String() string {
	return interruptModeName(uint8(m) >> 3)
}

func interruptModeName(v uint8) string {
	switch v {
	case 0:
		return "disabled"
	case 1:
		return "level low"
	case 2:
		return "level high"
	case 3:
		return "out of window"
	case 4:
		return "new sample ready"
	default:
		return fmt.Sprintf("mode(%d)", v)
	}
}

// Config holds the driver settings. Values are checked by the setters
// against the datasheet limits before any bus activity takes place.
type Config struct {
	// ptpOffset is the factory part-to-part range offset read during Init
	ptpOffset uint8

	address        uint8
	rangeScaling   uint8
	ambientScaling uint8
	pollMaxLoop    uint16

	readoutAveragingPeriodMultiplier uint8

	rangeMaxConvergenceTime     uint8
	rangeInterMeasurementPeriod uint16
	rangeVHVRecalibrationRate   uint8

	ambientAnalogueGainLevel      uint8
	ambientIntegrationPeriod      uint16
	ambientInterMeasurementPeriod uint16

	rangeInterruptMode            RangeInterruptMode
	ambientInterruptMode          AmbientInterruptMode
	rangeLowInterruptThreshold    uint8
	rangeHighInterruptThreshold   uint8
	ambientLowInterruptThreshold  uint16
	ambientHighInterruptThreshold uint16
}

// NewConfig returns a Config with the defaults from ST application note
// AN4545
func NewConfig() *Config {
	return &Config{
		address:     Address,
		pollMaxLoop: 500,

		rangeScaling:   1,
		ambientScaling: 1,

		readoutAveragingPeriodMultiplier: 48,

		rangeMaxConvergenceTime:     49,
		rangeInterMeasurementPeriod: 100,
		rangeVHVRecalibrationRate:   255,

		ambientAnalogueGainLevel:      0,
		ambientIntegrationPeriod:      100,
		ambientInterMeasurementPeriod: 500,

		rangeInterruptMode:            RangeInterruptNewSampleReady,
		ambientInterruptMode:          AmbientInterruptNewSampleReady,
		rangeLowInterruptThreshold:    0,
		rangeHighInterruptThreshold:   0xFF,
		ambientLowInterruptThreshold:  0,
		ambientHighInterruptThreshold: 0xFFFF,
	}
}

func invalid(field string, v uint16) error {
	return &InvalidConfigurationValueError{Field: field, Value: v}
}

// SetPollMaxLoop sets the number of status polls a blocking read makes before
// giving up. Default = 500
func (c *Config) SetPollMaxLoop(maxLoop uint16) {
	c.pollMaxLoop = maxLoop
}

// SetRangeMaxConvergenceTime sets the maximum time in ms a range measurement
// may take. Min = 2ms; Max = 63ms; Default = 49ms
//
// Reducing it lowers power consumption when no target is present; 30ms is a
// suitable starting point.
func (c *Config) SetRangeMaxConvergenceTime(ms uint8) error {
	if ms < 2 || ms > 63 {
		return invalid("range max convergence time", uint16(ms))
	}
	c.rangeMaxConvergenceTime = ms
	return nil
}

// minRangeInterMeasurementPeriod returns the smallest period in ms satisfying
// convergence + 5 <= period * 0.9 for the stored convergence time
func (c *Config) minRangeInterMeasurementPeriod() uint16 {
	// 10 * (conv + 5) <= 9 * period
	need := 10 * (uint16(c.rangeMaxConvergenceTime) + 5)
	minPeriod := (need + 8) / 9

	if minPeriod < 10 {
		minPeriod = 10
	}
	return minPeriod
}

// SetRangeInterMeasurementPeriod sets the period in ms between range
// measurements in continuous mode. The value must be a multiple of 10ms, at
// most 2550ms, and satisfy
//
//	range_max_convergence_time + 5 <= period * 0.9
//
// using the convergence time already stored, so set that first.
// Default = 100ms
func (c *Config) SetRangeInterMeasurementPeriod(ms uint16) error {
	if ms%10 != 0 || ms < c.minRangeInterMeasurementPeriod() || ms > 2550 {
		return invalid("range inter-measurement period", ms)
	}
	c.rangeInterMeasurementPeriod = ms
	return nil
}

// SetReadoutAveragingPeriodMultiplier sets the readout averaging sample
// period. Sampling period = 1.3ms + 64.5us * multiplier.
//
// Default = 48 which gives 4.4ms. Lower settings increase noise.
func (c *Config) SetReadoutAveragingPeriodMultiplier(multiplier uint8) {
	c.readoutAveragingPeriodMultiplier = multiplier
}

// SetVHVRecalibrationRate sets after how many range measurements the very
// high voltage calibration is repeated. 0 disables auto VHV.
func (c *Config) SetVHVRecalibrationRate(rate uint8) {
	c.rangeVHVRecalibrationRate = rate
}

// SetAmbientResultScaler sets the ambient result scaler. Min = 1x;
// Max = 15x; Default = 1x
func (c *Config) SetAmbientResultScaler(scaler uint8) error {
	if scaler < 1 || scaler > 15 {
		return invalid("ambient result scaler", uint16(scaler))
	}
	c.ambientScaling = scaler
	return nil
}

// SetRangeResultScaler sets the range scaling factor. Min = 1x; Max = 3x;
// Default = 1x
//
// At 2x or 3x the raw result is in units of 2mm or 3mm, increasing maximum
// range and reducing resolution. On an initialized device use
// VL6180X.SetRangeResultScaler so the dependent registers are updated.
func (c *Config) SetRangeResultScaler(scaler uint8) error {
	if scaler < 1 || scaler > 3 {
		return invalid("range result scaler", uint16(scaler))
	}
	c.rangeScaling = scaler
	return nil
}

// SetAmbientAnalogueGainLevel sets the ambient light analogue gain level.
//
//	0: 1.01  1: 1.28  2: 1.72  3: 2.60
//	4: 5.21  5: 10.32 6: 20    7: 40
func (c *Config) SetAmbientAnalogueGainLevel(level uint8) error {
	if level > 7 {
		return invalid("ambient analogue gain level", uint16(level))
	}
	c.ambientAnalogueGainLevel = level
	return nil
}

// SetAmbientIntegrationPeriod sets the time in ms a single ambient light
// measurement is integrated over. Min = 1ms; Max = 256ms; Default = 100ms
//
// 50-100ms reduces the impact of flicker from artificial lighting.
func (c *Config) SetAmbientIntegrationPeriod(ms uint16) error {
	if ms < 1 || ms > 256 {
		return invalid("ambient integration period", ms)
	}
	c.ambientIntegrationPeriod = ms
	return nil
}

// minAmbientInterMeasurementPeriod returns the smallest period in ms
// satisfying integration * 1.1 <= period * 0.9 for the stored integration
// period
func (c *Config) minAmbientInterMeasurementPeriod() uint16 {
	// 11 * integration <= 9 * period
	need := 11 * uint32(c.ambientIntegrationPeriod)
	minPeriod := uint16((need + 8) / 9)

	if minPeriod < 10 {
		minPeriod = 10
	}
	return minPeriod
}

// SetAmbientInterMeasurementPeriod sets the period in ms between ambient
// measurements in continuous mode. The value must be a multiple of 10ms, at
// most 2560ms, and satisfy
//
//	ambient_integration_period * 1.1 <= period * 0.9
//
// using the integration period already stored, so set that first.
// Default = 500ms
func (c *Config) SetAmbientInterMeasurementPeriod(ms uint16) error {
	if ms%10 != 0 || ms < c.minAmbientInterMeasurementPeriod() || ms > 2560 {
		return invalid("ambient inter-measurement period", ms)
	}
	c.ambientInterMeasurementPeriod = ms
	return nil
}

// SetRangeInterruptMode sets the range interrupt trigger condition
func (c *Config) SetRangeInterruptMode(mode RangeInterruptMode) {
	c.rangeInterruptMode = mode
}

// SetAmbientInterruptMode sets the ambient interrupt trigger condition
func (c *Config) SetAmbientInterruptMode(mode AmbientInterruptMode) {
	c.ambientInterruptMode = mode
}

// SetRangeLowInterruptThreshold sets the low range threshold, in raw units
// (multiplied by the range scaler). Default = 0
func (c *Config) SetRangeLowInterruptThreshold(threshold uint8) {
	c.rangeLowInterruptThreshold = threshold
}

// SetRangeHighInterruptThreshold sets the high range threshold, in raw units
// (multiplied by the range scaler). Default = 255
func (c *Config) SetRangeHighInterruptThreshold(threshold uint8) {
	c.rangeHighInterruptThreshold = threshold
}

// SetAmbientLowInterruptThreshold sets the low ambient threshold in raw
// counts, not lux. Default = 0
func (c *Config) SetAmbientLowInterruptThreshold(threshold uint16) {
	c.ambientLowInterruptThreshold = threshold
}

// SetAmbientHighInterruptThreshold sets the high ambient threshold in raw
// counts, not lux. Default = 0xFFFF
func (c *Config) SetAmbientHighInterruptThreshold(threshold uint16) {
	c.ambientHighInterruptThreshold = threshold
}

// SetAddress sets the I2C address used for the initial connection
func (c *Config) SetAddress(address uint8) {
	c.address = address
}

// Address returns the I2C address of the device
func (c Config) Address() uint8 {
	return c.address
}

// PartToPartOffset returns the factory range offset captured by Init
func (c Config) PartToPartOffset() uint8 {
	return c.ptpOffset
}

// PollMaxLoop returns the blocking read poll budget
func (c Config) PollMaxLoop() uint16 {
	return c.pollMaxLoop
}

// RangeResultScaler returns the range scaling factor
func (c Config) RangeResultScaler() uint8 {
	return c.rangeScaling
}

// AmbientResultScaler returns the ambient result scaler
func (c Config) AmbientResultScaler() uint8 {
	return c.ambientScaling
}

// ReadoutAveragingPeriodMultiplier returns the readout averaging multiplier
func (c Config) ReadoutAveragingPeriodMultiplier() uint8 {
	return c.readoutAveragingPeriodMultiplier
}

// RangeMaxConvergenceTime returns the range max convergence time in ms
func (c Config) RangeMaxConvergenceTime() uint8 {
	return c.rangeMaxConvergenceTime
}

// RangeInterMeasurementPeriod returns the range continuous mode period in ms
func (c Config) RangeInterMeasurementPeriod() uint16 {
	return c.rangeInterMeasurementPeriod
}

// VHVRecalibrationRate returns the VHV recalibration rate
func (c Config) VHVRecalibrationRate() uint8 {
	return c.rangeVHVRecalibrationRate
}

// AmbientAnalogueGainLevel returns the ambient analogue gain level (0-7)
func (c Config) AmbientAnalogueGainLevel() uint8 {
	return c.ambientAnalogueGainLevel
}

// AmbientIntegrationPeriod returns the ambient integration period in ms
func (c Config) AmbientIntegrationPeriod() uint16 {
	return c.ambientIntegrationPeriod
}

// AmbientInterMeasurementPeriod returns the ambient continuous mode period in ms
func (c Config) AmbientInterMeasurementPeriod() uint16 {
	return c.ambientInterMeasurementPeriod
}

// RangeInterruptMode returns the range interrupt trigger condition
func (c Config) RangeInterruptMode() RangeInterruptMode {
	return c.rangeInterruptMode
}

// AmbientInterruptMode returns the ambient interrupt trigger condition
func (c Config) AmbientInterruptMode() AmbientInterruptMode {
	return c.ambientInterruptMode
}

// RangeLowInterruptThreshold returns the low range threshold in raw units
func (c Config) RangeLowInterruptThreshold() uint8 {
	return c.rangeLowInterruptThreshold
}

// RangeHighInterruptThreshold returns the high range threshold in raw units
func (c Config) RangeHighInterruptThreshold() uint8 {
	return c.rangeHighInterruptThreshold
}

// AmbientLowInterruptThreshold returns the low ambient threshold in raw counts
func (c Config) AmbientLowInterruptThreshold() uint16 {
	return c.ambientLowInterruptThreshold
}

// AmbientHighInterruptThreshold returns the high ambient threshold in raw counts
func (c Config) AmbientHighInterruptThreshold() uint16 {
	return c.ambientHighInterruptThreshold
}

// AnalogueGain returns the ambient analogue gain for the configured level
func (c Config) AnalogueGain() float32 {
	return ambientAnalogueGainValue[c.ambientAnalogueGainLevel]
}

// Validate checks every bounded field and the relationships between the
// timing fields. The timing fields can drift apart when a dependent field is
// changed after the period was set.
func (c *Config) Validate() error {
	if c.rangeScaling < 1 || c.rangeScaling > 3 {
		return invalid("range result scaler", uint16(c.rangeScaling))
	}

	if c.ambientScaling < 1 || c.ambientScaling > 15 {
		return invalid("ambient result scaler", uint16(c.ambientScaling))
	}

	if c.ambientAnalogueGainLevel > 7 {
		return invalid("ambient analogue gain level", uint16(c.ambientAnalogueGainLevel))
	}

	if c.ambientIntegrationPeriod < 1 || c.ambientIntegrationPeriod > 256 {
		return invalid("ambient integration period", c.ambientIntegrationPeriod)
	}

	if c.rangeMaxConvergenceTime < 2 || c.rangeMaxConvergenceTime > 63 {
		return invalid("range max convergence time", uint16(c.rangeMaxConvergenceTime))
	}

	p := c.rangeInterMeasurementPeriod

	if p%10 != 0 || p < c.minRangeInterMeasurementPeriod() || p > 2550 {
		return invalid("range inter-measurement period", p)
	}

	p = c.ambientInterMeasurementPeriod

	if p%10 != 0 || p < c.minAmbientInterMeasurementPeriod() || p > 2560 {
		return invalid("ambient inter-measurement period", p)
	}

	return nil
}

// ValidateInterleaved checks the interleaved mode requirement
//
//	(range_max_convergence_time + 5) + ambient_integration_period * 1.1
//	    <= ambient_inter_measurement_period * 0.9
func (c *Config) ValidateInterleaved() error {
	// scaled by 10
	need := 10*(uint32(c.rangeMaxConvergenceTime)+5) + 11*uint32(c.ambientIntegrationPeriod)

	if need > 9*uint32(c.ambientInterMeasurementPeriod) {
		return invalid("interleaved ambient inter-measurement period",
			c.ambientInterMeasurementPeriod)
	}
	return nil
}
