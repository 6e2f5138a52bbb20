package vl6180x

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of Config. Absent fields keep their default.
type fileConfig struct {
	Address     *uint8  `yaml:"address"`
	PollMaxLoop *uint16 `yaml:"poll_max_loop"`

	RangeResultScaler   *uint8 `yaml:"range_result_scaler"`
	AmbientResultScaler *uint8 `yaml:"ambient_result_scaler"`

	ReadoutAveragingPeriodMultiplier *uint8 `yaml:"readout_averaging_period_multiplier"`

	RangeMaxConvergenceTime     *uint8  `yaml:"range_max_convergence_time"`
	RangeInterMeasurementPeriod *uint16 `yaml:"range_inter_measurement_period"`
	VHVRecalibrationRate        *uint8  `yaml:"vhv_recalibration_rate"`

	AmbientAnalogueGainLevel      *uint8  `yaml:"ambient_analogue_gain_level"`
	AmbientIntegrationPeriod      *uint16 `yaml:"ambient_integration_period"`
	AmbientInterMeasurementPeriod *uint16 `yaml:"ambient_inter_measurement_period"`

	RangeInterrupt   *interruptFile `yaml:"range_interrupt"`
	AmbientInterrupt *interruptFile `yaml:"ambient_interrupt"`
}

type interruptFile struct {
	Mode *string `yaml:"mode"`
	Low  *uint16 `yaml:"low"`
	High *uint16 `yaml:"high"`
}

// interruptModes maps the YAML mode names to the 3-bit field value
var interruptModes = map[string]uint8{
	"disabled":         0,
	"level_low":        1,
	"level_high":       2,
	"out_of_window":    3,
	"new_sample_ready": 4,
}

// LoadConfigFile reads a YAML configuration file, see LoadConfig
func LoadConfigFile(path string) (*Config, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	return LoadConfig(f)
}

// LoadConfig reads a YAML document and applies each field present through its
// Config setter, starting from NewConfig(). Convergence time and integration
// period are applied before the periods validated against them.
func LoadConfig(r io.Reader) (*Config, error) {

	var fc fileConfig

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	c := NewConfig()

	if fc.Address != nil {
		c.SetAddress(*fc.Address)
	}

	if fc.PollMaxLoop != nil {
		c.SetPollMaxLoop(*fc.PollMaxLoop)
	}

	if fc.ReadoutAveragingPeriodMultiplier != nil {
		c.SetReadoutAveragingPeriodMultiplier(*fc.ReadoutAveragingPeriodMultiplier)
	}

	if fc.VHVRecalibrationRate != nil {
		c.SetVHVRecalibrationRate(*fc.VHVRecalibrationRate)
	}

	steps := []func() error{
		setIf8(fc.RangeResultScaler, c.SetRangeResultScaler),
		setIf8(fc.AmbientResultScaler, c.SetAmbientResultScaler),
		setIf8(fc.RangeMaxConvergenceTime, c.SetRangeMaxConvergenceTime),
		setIf16(fc.RangeInterMeasurementPeriod, c.SetRangeInterMeasurementPeriod),
		setIf8(fc.AmbientAnalogueGainLevel, c.SetAmbientAnalogueGainLevel),
		setIf16(fc.AmbientIntegrationPeriod, c.SetAmbientIntegrationPeriod),
		setIf16(fc.AmbientInterMeasurementPeriod, c.SetAmbientInterMeasurementPeriod),
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	if err := applyRangeInterrupt(c, fc.RangeInterrupt); err != nil {
		return nil, err
	}

	if err := applyAmbientInterrupt(c, fc.AmbientInterrupt); err != nil {
		return nil, err
	}

	// cross-field check over the final values
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func setIf8(v *uint8, set func(uint8) error) func() error {
	return func() error {
		if v == nil {
			return nil
		}
		return set(*v)
	}
}

func setIf16(v *uint16, set func(uint16) error) func() error {
	return func() error {
		if v == nil {
			return nil
		}
		return set(*v)
	}
}

func parseInterruptMode(name string) (uint8, error) {
	m, ok := interruptModes[name]

	if !ok {
		return 0, fmt.Errorf("unknown interrupt mode %q", name)
	}

	return m, nil
}

func applyRangeInterrupt(c *Config, f *interruptFile) error {

	if f == nil {
		return nil
	}

	if f.Mode != nil {
		m, err := parseInterruptMode(*f.Mode)

		if err != nil {
			return err
		}

		c.SetRangeInterruptMode(RangeInterruptMode(m))
	}

	if f.Low != nil {
		if *f.Low > 0xFF {
			return invalid("range low interrupt threshold", *f.Low)
		}
		c.SetRangeLowInterruptThreshold(uint8(*f.Low))
	}

	if f.High != nil {
		if *f.High > 0xFF {
			return invalid("range high interrupt threshold", *f.High)
		}
		c.SetRangeHighInterruptThreshold(uint8(*f.High))
	}

	return nil
}

func applyAmbientInterrupt(c *Config, f *interruptFile) error {

	if f == nil {
		return nil
	}

	if f.Mode != nil {
		m, err := parseInterruptMode(*f.Mode)

		if err != nil {
			return err
		}

		c.SetAmbientInterruptMode(AmbientInterruptMode(m << 3))
	}

	if f.Low != nil {
		c.SetAmbientLowInterruptThreshold(*f.Low)
	}

	if f.High != nil {
		c.SetAmbientHighInterruptThreshold(*f.High)
	}

	return nil
}
