package vl6180x

// RangeStatusErrorCode is the error code reported in RESULT_RANGE_STATUS
type RangeStatusErrorCode uint8

const (
	RangeNoError                  RangeStatusErrorCode = 0b0000_0000
	RangeVCSELContinuityTest      RangeStatusErrorCode = 0b0001_0000
	RangeVCSELWatchdogTest        RangeStatusErrorCode = 0b0010_0000
	RangeVCSELWatchdog            RangeStatusErrorCode = 0b0011_0000
	RangePLL1Lock                 RangeStatusErrorCode = 0b0100_0000
	RangePLL2Lock                 RangeStatusErrorCode = 0b0101_0000
	RangeEarlyConvergenceEstimate RangeStatusErrorCode = 0b0110_0000
	RangeMaxConvergence           RangeStatusErrorCode = 0b0111_0000
	RangeNoTargetIgnore           RangeStatusErrorCode = 0b1000_0000
	RangeMaxSignalToNoiseRatio    RangeStatusErrorCode = 0b1011_0000
	RangeRawRangingAlgoUnderflow  RangeStatusErrorCode = 0b1100_0000
	RangeRawRangingAlgoOverflow   RangeStatusErrorCode = 0b1101_0000
	RangeRangingAlgoUnderflow     RangeStatusErrorCode = 0b1110_0000
	RangeRangingAlgoOverflow      RangeStatusErrorCode = 0b1111_0000
)

var rangeStatusNames = map[RangeStatusErrorCode]string{
	RangeNoError:                  "no error",
	RangeVCSELContinuityTest:      "VCSEL continuity test",
	RangeVCSELWatchdogTest:        "VCSEL watchdog test",
	RangeVCSELWatchdog:            "VCSEL watchdog",
	RangePLL1Lock:                 "PLL1 lock",
	RangePLL2Lock:                 "PLL2 lock",
	RangeEarlyConvergenceEstimate: "early convergence estimate",
	RangeMaxConvergence:           "max convergence",
	RangeNoTargetIgnore:           "no target ignore",
	RangeMaxSignalToNoiseRatio:    "max signal to noise ratio",
	RangeRawRangingAlgoUnderflow:  "raw ranging algo underflow",
	RangeRawRangingAlgoOverflow:   "raw ranging algo overflow",
	RangeRangingAlgoUnderflow:     "ranging algo underflow",
	RangeRangingAlgoOverflow:      "ranging algo overflow",
}

// String implement Stringer interface for RangeStatusErrorCode
func (c RangeStatusErrorCode) String() string {
	if s, ok := rangeStatusNames[c]; ok {
		return s
	}
	return "unknown status"
}

// AmbientStatusErrorCode is the error code reported in RESULT_ALS_STATUS
type AmbientStatusErrorCode uint8

const (
	AmbientNoError   AmbientStatusErrorCode = 0b0000_0000
	AmbientOverflow  AmbientStatusErrorCode = 0b0001_0000
	AmbientUnderflow AmbientStatusErrorCode = 0b0010_0000
)

// String implement Stringer interface for AmbientStatusErrorCode
func (c AmbientStatusErrorCode) String() string {
	switch c {
	case AmbientNoError:
		return "no error"
	case AmbientOverflow:
		return "overflow"
	case AmbientUnderflow:
		return "underflow"
	default:
		return "unknown status"
	}
}

// InterruptStatusCode selects an event class in RESULT_INTERRUPT_STATUS_GPIO
type InterruptStatusCode uint8

const (
	// NoRangeEvents is set when the range field (bits 2:0) is zero
	NoRangeEvents InterruptStatusCode = iota
	// NoAmbientEvents is set when the ambient field (bits 5:3) is zero
	NoAmbientEvents
	// NoErrorEvents is set when the error field (bits 7:6) is zero
	NoErrorEvents
)

const (
	interruptRangeMask   uint8 = 0b0000_0111
	interruptAmbientMask uint8 = 0b0011_1000
	interruptErrorMask   uint8 = 0b1100_0000
)

// InterruptStatus is a raw RESULT_INTERRUPT_STATUS_GPIO value
type InterruptStatus uint8

// Has reports whether the status includes the given event class
func (s InterruptStatus) Has(code InterruptStatusCode) bool {
	switch code {
	case NoRangeEvents:
		return uint8(s)&interruptRangeMask == 0
	case NoAmbientEvents:
		return uint8(s)&interruptAmbientMask == 0
	case NoErrorEvents:
		return uint8(s)&interruptErrorMask == 0
	}
	return false
}

// RangeEvent returns the range interrupt field, encoded like RangeInterruptMode
func (s InterruptStatus) RangeEvent() RangeInterruptMode {
	return RangeInterruptMode(uint8(s) & interruptRangeMask)
}

// AmbientEvent returns the ambient interrupt field, encoded like
// AmbientInterruptMode
func (s InterruptStatus) AmbientEvent() AmbientInterruptMode {
	return AmbientInterruptMode(uint8(s) & interruptAmbientMask)
}

// ErrorEvent returns the error field: 1 laser safety error, 2 PLL error
func (s InterruptStatus) ErrorEvent() uint8 {
	return (uint8(s) & interruptErrorMask) >> 6
}

// DecodeRangeStatus maps a RESULT_RANGE_STATUS value to its error code. An
// unmapped value gives *UnknownRegisterCodeError, a mapped value other than
// RangeNoError gives *RangeStatusError.
func DecodeRangeStatus(status uint8) (RangeStatusErrorCode, error) {
	code := RangeStatusErrorCode(status)

	if _, ok := rangeStatusNames[code]; !ok {
		return 0, &UnknownRegisterCodeError{Register: RESULT_RANGE_STATUS, Code: status}
	}

	if code != RangeNoError {
		return code, &RangeStatusError{Code: code}
	}

	return code, nil
}

// DecodeAmbientStatus maps a RESULT_ALS_STATUS value to its error code. An
// unmapped value gives *UnknownRegisterCodeError, a mapped value other than
// AmbientNoError gives *AmbientStatusError.
func DecodeAmbientStatus(status uint8) (AmbientStatusErrorCode, error) {
	code := AmbientStatusErrorCode(status)

	switch code {
	case AmbientNoError:
		return code, nil
	case AmbientOverflow, AmbientUnderflow:
		return code, &AmbientStatusError{Code: code}
	}

	return 0, &UnknownRegisterCodeError{Register: RESULT_ALS_STATUS, Code: status}
}

// luxResolutionFactor is the lux per count at gain 1 and 100 ms integration
const luxResolutionFactor float32 = 0.32

// RawRangeToMillimeters converts a RESULT_RANGE_VAL count using the range
// scaler in effect when it was measured
func RawRangeToMillimeters(raw uint8, scaler uint8) uint16 {
	return uint16(scaler) * uint16(raw)
}

// RawAmbientToLux converts a RESULT_ALS_VAL count to lux for the given
// analogue gain level (0-7) and integration period in ms
func RawAmbientToLux(raw uint16, gainLevel uint8, integrationMs uint16) float32 {
	gain := ambientAnalogueGainValue[gainLevel&0x07]

	return (luxResolutionFactor * 100 / gain) * (float32(raw) / float32(integrationMs))
}
