package max30100

import "github.com/cgxeiji/max3010x/v2"

// Register addresses
const (
	IntStatus  = 0x00
	IntEnable  = 0x01
	FIFOWrPtr  = 0x02
	OvfCounter = 0x03
	FIFORdPtr  = 0x04
	FIFOData   = 0x05
	ModeCfg    = 0x06
	SpO2Cfg    = 0x07
	LedCfg     = 0x09
	TempInt    = 0x16
	TempFrac   = 0x17
	RegRevID   = 0xFE
	RegPartID  = 0xFF
)

// Device constants
const (
	Addr   = 0x57
	PartID = 0x11
)

// Interrupts
const (
	AlmostFull max3010x.Interrupt = iota
	TempReady
	HRReady
	SpO2Ready
	PowerReady
)

// Mode is the measurement mode.
type Mode byte

// Modes
const (
	ModeHR     Mode = 0b010 // IR LED only
	ModeIROnly Mode = ModeHR
	ModeSpO2   Mode = 0b011 // IR and red LEDs
	ModeRedIR  Mode = ModeSpO2

	tempEnableBit = 3
)

// Rate is the SpO2 sample rate control.
type Rate byte

// Sample rates in samples per second.
const (
	SR50 Rate = iota
	SR100
	SR167
	SR200
	SR400
	SR600
	SR800
	SR1000
)

// Resolution is the LED pulse width, which sets the ADC resolution.
type Resolution byte

// Pulse widths in µs and their resolution.
const (
	PW200  Resolution = iota // 13 bits
	PW400                    // 14 bits
	PW800                    // 15 bits
	PW1600                   // 16 bits
)

// LED selects one of the LEDs.
type LED int

// LEDs
const (
	LEDIR LED = iota
	LEDRed
)

// LedCurrent is a LED current step.
type LedCurrent byte

// LED currents in mA.
const (
	MA0 LedCurrent = iota
	MA4_4
	MA7_6
	MA11
	MA14_2
	MA17_4
	MA20_8
	MA24
	MA27_1
	MA30_6
	MA33_8
	MA37
	MA40_2
	MA43_6
	MA46_8
	MA50
)

// Bit fields of the SpO2 and LED configuration registers.
const (
	resShift, resMask   = 0, 0b11
	rateShift, rateMask = 2, 0b111
	ledMask             = 0b1111
)

var variant = max3010x.Variant{
	Name:          "MAX30100",
	PartID:        PartID,
	FIFOSize:      16,
	SampleWidth:   2,
	MaxSlots:      2,
	LEDs:          2,
	ModeReg:       ModeCfg,
	ShutdownBit:   7,
	ResetBit:      6,
	FIFOBase:      FIFOWrPtr,
	SpO2Reg:       SpO2Cfg,
	LEDReg:        LedCfg,
	TempConfigReg: ModeCfg,
	TempConfigBit: tempEnableBit,
	TempIntReg:    TempInt,
	TempFracReg:   TempFrac,
	TempReady:     TempReady,
	Interrupts: []max3010x.InterruptMap{
		AlmostFull: {ConfigReg: IntEnable, ConfigBit: 7, StatusReg: IntStatus, StatusBit: 7},
		TempReady:  {ConfigReg: IntEnable, ConfigBit: 6, StatusReg: IntStatus, StatusBit: 6},
		HRReady:    {ConfigReg: IntEnable, ConfigBit: 5, StatusReg: IntStatus, StatusBit: 5},
		SpO2Ready:  {ConfigReg: IntEnable, ConfigBit: 4, StatusReg: IntStatus, StatusBit: 4},
		PowerReady: {ConfigReg: max3010x.Absent, ConfigBit: max3010x.Absent, StatusReg: IntStatus, StatusBit: 0},
	},
}
