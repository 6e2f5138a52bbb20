package vl6180x

const (
	// Identification registers
	IDENTIFICATION_MODEL_ID         uint16 = 0x000
	IDENTIFICATION_MODEL_REV_MAJOR  uint16 = 0x001
	IDENTIFICATION_MODEL_REV_MINOR  uint16 = 0x002
	IDENTIFICATION_MODULE_REV_MAJOR uint16 = 0x003
	IDENTIFICATION_MODULE_REV_MINOR uint16 = 0x004
	IDENTIFICATION_DATE_HI          uint16 = 0x006
	IDENTIFICATION_DATE_LO          uint16 = 0x007
	IDENTIFICATION_TIME             uint16 = 0x008 // 16-bit

	// System setup registers
	SYSTEM_MODE_GPIO0             uint16 = 0x010
	SYSTEM_MODE_GPIO1             uint16 = 0x011
	SYSTEM_HISTORY_CTRL           uint16 = 0x012
	SYSTEM_INTERRUPT_CONFIG_GPIO  uint16 = 0x014
	SYSTEM_INTERRUPT_CLEAR        uint16 = 0x015
	SYSTEM_FRESH_OUT_OF_RESET     uint16 = 0x016
	SYSTEM_GROUPED_PARAMETER_HOLD uint16 = 0x017

	// Range setup registers
	SYSRANGE_START                      uint16 = 0x018
	SYSRANGE_THRESH_HIGH                uint16 = 0x019
	SYSRANGE_THRESH_LOW                 uint16 = 0x01A
	SYSRANGE_INTERMEASUREMENT_PERIOD    uint16 = 0x01B
	SYSRANGE_MAX_CONVERGENCE_TIME       uint16 = 0x01C
	SYSRANGE_CROSSTALK_COMPENSATION     uint16 = 0x01E // 16-bit
	SYSRANGE_CROSSTALK_VALID_HEIGHT     uint16 = 0x021
	SYSRANGE_EARLY_CONVERGENCE_ESTIMATE uint16 = 0x022 // 16-bit
	SYSRANGE_PART_TO_PART_RANGE_OFFSET  uint16 = 0x024
	SYSRANGE_RANGE_IGNORE_VALID_HEIGHT  uint16 = 0x025
	SYSRANGE_RANGE_IGNORE_THRESHOLD     uint16 = 0x026 // 16-bit
	SYSRANGE_MAX_AMBIENT_LEVEL_MULT     uint16 = 0x02C
	SYSRANGE_RANGE_CHECK_ENABLES        uint16 = 0x02D
	SYSRANGE_VHV_RECALIBRATE            uint16 = 0x02E
	SYSRANGE_VHV_REPEAT_RATE            uint16 = 0x031

	// Ambient light setup registers
	SYSALS_START                   uint16 = 0x038
	SYSALS_THRESH_HIGH             uint16 = 0x03A // 16-bit
	SYSALS_THRESH_LOW              uint16 = 0x03C // 16-bit
	SYSALS_INTERMEASUREMENT_PERIOD uint16 = 0x03E
	SYSALS_ANALOGUE_GAIN           uint16 = 0x03F
	SYSALS_INTEGRATION_PERIOD      uint16 = 0x040 // 16-bit

	// Result registers
	RESULT_RANGE_STATUS          uint16 = 0x04D
	RESULT_ALS_STATUS            uint16 = 0x04E
	RESULT_INTERRUPT_STATUS_GPIO uint16 = 0x04F
	RESULT_ALS_VAL               uint16 = 0x050 // 16-bit
	RESULT_HISTORY_BUFFER        uint16 = 0x052
	RESULT_RANGE_VAL             uint16 = 0x062
	RESULT_RANGE_RAW             uint16 = 0x064
	RESULT_RANGE_RETURN_RATE     uint16 = 0x066 // 16-bit
	RESULT_RANGE_REFERENCE_RATE  uint16 = 0x068 // 16-bit

	// RANGE_SCALER is not in the datasheet, see STSW-IMG003 vl6180x_def.h
	RANGE_SCALER uint16 = 0x096 // 16-bit

	READOUT_AVERAGING_SAMPLE_PERIOD uint16 = 0x10A
	FIRMWARE_BOOTUP                 uint16 = 0x119
	FIRMWARE_RESULT_SCALER          uint16 = 0x120
	I2C_SLAVE_DEVICE_ADDRESS        uint16 = 0x212
	INTERLEAVED_MODE_ENABLE         uint16 = 0x2A3
)

const (
	// ModelID is the value of IDENTIFICATION_MODEL_ID on a VL6180X
	ModelID uint8 = 0xB4

	// freshOutOfReset is the value SYSTEM_FRESH_OUT_OF_RESET holds after boot
	freshOutOfReset uint8 = 0x01
)

// SYSRANGE_START / SYSALS_START values. Writing startStop while in
// continuous mode stops it.
const (
	startStop       uint8 = 0x01
	startContinuous uint8 = 0x03
)

// interruptClearCode values for SYSTEM_INTERRUPT_CLEAR
type interruptClearCode uint8

const (
	clearRange   interruptClearCode = 0b0000_0001
	clearAmbient interruptClearCode = 0b0000_0010
	clearError   interruptClearCode = 0b0000_0100
)

// SYSTEM_MODE_GPIO1 active high polarity bit and select field
const (
	gpio1PolarityActiveHigh uint8 = 0b0010_0000

	gpio1SelectOff             uint8 = 0b0000_0000
	gpio1SelectInterruptOutput uint8 = 0b0001_0000
)

// rangeCheckEarlyConvergence is bit 0 of SYSRANGE_RANGE_CHECK_ENABLES
const rangeCheckEarlyConvergence uint8 = 0x01

// defaultCrosstalkValidHeight is the reset value of
// SYSRANGE_CROSSTALK_VALID_HEIGHT at 1x scaling
const defaultCrosstalkValidHeight uint8 = 20

// ambientAnalogueGainCode holds the SYSALS_ANALOGUE_GAIN register value for
// each gain level. Bit 6 must always be set.
var ambientAnalogueGainCode = [8]uint8{
	0x46, // 1.01
	0x45, // 1.28
	0x44, // 1.72
	0x43, // 2.60
	0x42, // 5.21
	0x41, // 10.32
	0x40, // 20
	0x47, // 40
}

// ambientAnalogueGainValue is the actual gain for each gain level (datasheet
// table 14)
var ambientAnalogueGainValue = [8]float32{
	1.01, 1.28, 1.72, 2.60, 5.21, 10.32, 20, 40,
}

// rangeScalarCode is the RANGE_SCALER value indexed by scaling factor
var rangeScalarCode = [4]uint16{0, 253, 127, 84}

// privateRegister is a single vendor-private register write
type privateRegister struct {
	reg uint16
	val uint8
}

// privateRegisters are the mandatory settings from ST application note AN4545
// section "SR03 settings"
var privateRegisters = [...]privateRegister{
	{0x207, 0x01},
	{0x208, 0x01},
	{0x096, 0x00},
	{0x097, 0xFD}, // RANGE_SCALER = 253
	{0x0E3, 0x01},
	{0x0E4, 0x03},
	{0x0E5, 0x02},
	{0x0E6, 0x01},
	{0x0E7, 0x03},
	{0x0F5, 0x02},
	{0x0D9, 0x05},
	{0x0DB, 0xCE},
	{0x0DC, 0x03},
	{0x0DD, 0xF8},
	{0x09F, 0x00},
	{0x0A3, 0x3C},
	{0x0B7, 0x00},
	{0x0BB, 0x3C},
	{0x0B2, 0x09},
	{0x0CA, 0x09},
	{0x198, 0x01},
	{0x1B0, 0x17},
	{0x1AD, 0x00},
	{0x0FF, 0x05},
	{0x100, 0x05},
	{0x199, 0x05},
	{0x1A6, 0x1B},
	{0x1AC, 0x3E},
	{0x1A7, 0x1F},
	{0x030, 0x00},
}
