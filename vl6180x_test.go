package vl6180x

import (
	"errors"
	"testing"
)

func TestChangeAddress(t *testing.T) {
	for _, tc := range []struct {
		addr  uint8
		valid bool
	}{
		{0x07, false},
		{0x08, true},
		{0x29, true},
		{0x77, true},
		{0x78, false},
		{0xFF, false},
	} {
		v, bus := readyDevice(nil)

		err := v.ChangeAddress(tc.addr)

		if !tc.valid {
			var iae *InvalidAddressError

			if !errors.As(err, &iae) || iae.Address != tc.addr {
				t.Errorf("0x%02X: expected *InvalidAddressError, got %v", tc.addr, err)
			}

			if v.Config().Address() != Address {
				t.Errorf("0x%02X: stored address changed to 0x%02X", tc.addr, v.Config().Address())
			}

			if len(bus.ops) != 0 || len(bus.readdressed) != 0 {
				t.Errorf("0x%02X: bus touched: %v", tc.addr, bus.ops)
			}

			continue
		}

		if err != nil {
			t.Errorf("0x%02X: unexpected error %v", tc.addr, err)
			continue
		}

		if v.Config().Address() != tc.addr {
			t.Errorf("0x%02X: stored address is 0x%02X", tc.addr, v.Config().Address())
		}

		if bus.regs[I2C_SLAVE_DEVICE_ADDRESS] != uint16(tc.addr) {
			t.Errorf("0x%02X: address register not written", tc.addr)
		}

		if len(bus.readdressed) != 1 || bus.readdressed[0] != tc.addr {
			t.Errorf("0x%02X: bus not readdressed: %v", tc.addr, bus.readdressed)
		}
	}
}

func TestSetRangeResultScaler(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		bus := newFakeBus()
		bus.regs[SYSRANGE_PART_TO_PART_RANGE_OFFSET] = 25
		bus.regs[SYSRANGE_RANGE_CHECK_ENABLES] = 0xF1

		v, err := New(bus, nil)

		if err != nil {
			t.Fatal(err)
		}

		for _, tc := range []struct {
			scaler    uint8
			code      uint16
			offset    uint16
			crosstalk uint16
			rce       uint16
		}{
			{2, 127, 12, 10, 0xF0},
			{3, 84, 8, 6, 0xF0},
			{1, 253, 25, 20, 0xF1},
		} {
			if err := v.SetRangeResultScaler(tc.scaler); err != nil {
				t.Fatalf("scaler %d: %v", tc.scaler, err)
			}

			if bus.regs[RANGE_SCALER] != tc.code {
				t.Errorf("scaler %d: expected code %d, got %d", tc.scaler, tc.code, bus.regs[RANGE_SCALER])
			}

			if bus.regs[SYSRANGE_PART_TO_PART_RANGE_OFFSET] != tc.offset {
				t.Errorf("scaler %d: expected offset %d, got %d", tc.scaler, tc.offset,
					bus.regs[SYSRANGE_PART_TO_PART_RANGE_OFFSET])
			}

			if bus.regs[SYSRANGE_CROSSTALK_VALID_HEIGHT] != tc.crosstalk {
				t.Errorf("scaler %d: expected crosstalk height %d, got %d", tc.scaler, tc.crosstalk,
					bus.regs[SYSRANGE_CROSSTALK_VALID_HEIGHT])
			}

			if bus.regs[SYSRANGE_RANGE_CHECK_ENABLES] != tc.rce {
				t.Errorf("scaler %d: expected range check enables 0x%02X, got 0x%02X", tc.scaler, tc.rce,
					bus.regs[SYSRANGE_RANGE_CHECK_ENABLES])
			}

			if v.Config().RangeResultScaler() != tc.scaler {
				t.Errorf("scaler %d: config holds %d", tc.scaler, v.Config().RangeResultScaler())
			}
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		v, bus := readyDevice(nil)

		if err := v.SetRangeResultScaler(4); err == nil {
			t.Fatal("expected error")
		}

		if len(bus.ops) != 0 {
			t.Errorf("bus touched: %v", bus.ops)
		}
	})

	t.Run("NotReady", func(t *testing.T) {
		bus := newFakeBus()
		v := NewPoweredOff(bus, nil, nil)

		if err := v.SetRangeResultScaler(3); err != nil {
			t.Fatal(err)
		}

		if len(bus.ops) != 0 {
			t.Errorf("bus touched: %v", bus.ops)
		}

		if err := v.Init(); err != nil {
			t.Fatal(err)
		}

		if bus.regs[RANGE_SCALER] != 84 {
			t.Errorf("stored scaler not applied at init, RANGE_SCALER=%d", bus.regs[RANGE_SCALER])
		}
	})
}

func TestContinuousModes(t *testing.T) {
	v, bus := readyDevice(nil)

	steps := []struct {
		name string
		call func() error
		want []busOp
	}{
		{"StartRangeContinuous", v.StartRangeContinuous, []busOp{
			{write: true, reg: SYSRANGE_START, val: 0x03},
		}},
		{"StopRangeContinuous", v.StopRangeContinuous, []busOp{
			{write: true, reg: SYSRANGE_START, val: 0x01},
		}},
		{"StartAmbientContinuous", v.StartAmbientContinuous, []busOp{
			{write: true, reg: SYSALS_START, val: 0x03},
		}},
		{"StartInterleavedContinuous", v.StartInterleavedContinuous, []busOp{
			{write: true, reg: INTERLEAVED_MODE_ENABLE, val: 0x01},
			{write: true, reg: SYSALS_START, val: 0x03},
		}},
		{"StopAmbientContinuous", v.StopAmbientContinuous, []busOp{
			{write: true, reg: SYSALS_START, val: 0x01},
			{write: true, reg: INTERLEAVED_MODE_ENABLE, val: 0x00},
		}},
		{"StartAmbientSingle", v.StartAmbientSingle, []busOp{
			{write: true, reg: SYSALS_START, val: 0x01},
		}},
		{"ClearAllInterrupts", v.ClearAllInterrupts, []busOp{
			{write: true, reg: SYSTEM_INTERRUPT_CLEAR, val: 0x07},
		}},
		{"ClearErrorInterrupt", v.ClearErrorInterrupt, []busOp{
			{write: true, reg: SYSTEM_INTERRUPT_CLEAR, val: 0x04},
		}},
	}

	for _, s := range steps {
		bus.reset()

		if err := s.call(); err != nil {
			t.Errorf("%s: unexpected error %v", s.name, err)
			continue
		}

		if len(bus.ops) != len(s.want) {
			t.Errorf("%s: expected %v, got %v", s.name, s.want, bus.ops)
			continue
		}

		for i := range s.want {
			if bus.ops[i] != s.want[i] {
				t.Errorf("%s: op %d expected %s, got %s", s.name, i, s.want[i], bus.ops[i])
			}
		}
	}
}

func TestStartInterleavedRejectsShortPeriod(t *testing.T) {
	cfg := NewConfig()
	cfg.SetAmbientInterMeasurementPeriod(150)

	v, bus := readyDevice(cfg)

	err := v.StartInterleavedContinuous()

	var ice *InvalidConfigurationValueError

	if !errors.As(err, &ice) || ice.Value != 150 {
		t.Fatalf("expected configuration error, got %v", err)
	}

	if len(bus.ops) != 0 {
		t.Errorf("bus touched: %v", bus.ops)
	}
}

func TestReconfigure(t *testing.T) {
	bus := newFakeBus()
	bus.regs[SYSRANGE_PART_TO_PART_RANGE_OFFSET] = 9

	v, err := New(bus, nil)

	if err != nil {
		t.Fatal(err)
	}

	if err := v.ChangeAddress(0x30); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfig()
	cfg.SetAmbientAnalogueGainLevel(7)
	cfg.SetRangeResultScaler(3)

	if err := v.Reconfigure(cfg); err != nil {
		t.Fatal(err)
	}

	got := v.Config()

	if got.PartToPartOffset() != 9 || got.Address() != 0x30 {
		t.Errorf("offset or address lost: offset %d address 0x%02X", got.PartToPartOffset(), got.Address())
	}

	if bus.regs[SYSALS_ANALOGUE_GAIN] != 0x47 {
		t.Errorf("gain not written, got 0x%02X", bus.regs[SYSALS_ANALOGUE_GAIN])
	}

	if bus.regs[SYSRANGE_PART_TO_PART_RANGE_OFFSET] != 3 {
		t.Errorf("expected offset 9/3 = 3, got %d", bus.regs[SYSRANGE_PART_TO_PART_RANGE_OFFSET])
	}
}

func TestReadIdentification(t *testing.T) {
	v, bus := readyDevice(nil)
	bus.regs[IDENTIFICATION_MODEL_ID] = uint16(ModelID)
	bus.regs[IDENTIFICATION_MODEL_REV_MAJOR] = 1
	bus.regs[IDENTIFICATION_MODULE_REV_MINOR] = 3
	bus.regs[IDENTIFICATION_DATE_HI] = 0x4A0B
	bus.regs[IDENTIFICATION_TIME] = 0x1234

	id, err := v.ReadIdentification()

	if err != nil {
		t.Fatal(err)
	}

	want := Identification{Model: ModelID, ModelRevMajor: 1, ModuleRevMinor: 3, Date: 0x4A0B, Time: 0x1234}

	if id != want {
		t.Errorf("expected %+v, got %+v", want, id)
	}

	model, err := v.ReadModelID()

	if err != nil || model != ModelID {
		t.Errorf("expected model 0x%02X, got 0x%02X %v", ModelID, model, err)
	}
}

func TestReconfigureRejectsInvalidConfig(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		v, bus := readyDevice(nil)

		if err := v.Reconfigure(nil); !errors.Is(err, ErrNilConfig) {
			t.Fatalf("expected ErrNilConfig, got %v", err)
		}

		if len(bus.ops) != 0 {
			t.Errorf("bus touched: %v", bus.ops)
		}
	})

	t.Run("PeriodsOnly", func(t *testing.T) {
		v, bus := readyDevice(nil)

		cfg := &Config{}

		if err := cfg.SetRangeInterMeasurementPeriod(100); err != nil {
			t.Fatal(err)
		}

		if err := cfg.SetAmbientInterMeasurementPeriod(500); err != nil {
			t.Fatal(err)
		}

		err := v.Reconfigure(cfg)

		var ice *InvalidConfigurationValueError

		if !errors.As(err, &ice) {
			t.Fatalf("expected *InvalidConfigurationValueError, got %v", err)
		}

		if len(bus.ops) != 0 {
			t.Errorf("bus touched: %v", bus.ops)
		}

		if v.Config() != *NewConfig() {
			t.Errorf("config replaced by rejected one:\n%s", pprint.Sdump(v.Config()))
		}
	})
}
