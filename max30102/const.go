package max30102

import "github.com/cgxeiji/max3010x/v2"

// Register addresses
const (
	IntStat1         = 0x00
	IntStat2         = 0x01
	IntEna1          = 0x02
	IntEna2          = 0x03
	FIFOWrPtr        = 0x04
	OvfCount         = 0x05
	FIFORdPtr        = 0x06
	FIFOData         = 0x07
	FIFOCfg          = 0x08
	ModeCfg          = 0x09
	SpO2Cfg          = 0x0A
	Led1PA           = 0x0C
	Led2PA           = 0x0D
	MultiLedModeS2S1 = 0x11
	MultiLedModeS4S3 = 0x12
	TempInt          = 0x1F
	TempFrac         = 0x20
	TempCfg          = 0x21
	RegRevID         = 0xFE
	RegPartID        = 0xFF
)

// Interrupts
const (
	AlmostFull max3010x.Interrupt = iota
	DieTempReady
	NewFIFOData
	AmbientLightCancelOvf
	PowerReady
)

// Device constants
const (
	Addr   = 0x57
	PartID = 0x15
)

// LED selects one of the LEDs.
type LED int

// LEDs
const (
	LEDRed LED = iota
	LEDIR
)

// Multi-LED slot codes
const (
	SlotOff               = max3010x.SlotOff
	SlotRed max3010x.Slot = 1
	SlotIR  max3010x.Slot = 2
)

var variant = max3010x.Variant{
	Name:          "MAX30102",
	PartID:        PartID,
	FIFOSize:      32,
	SampleWidth:   3,
	MaxSlots:      4,
	MaxSlot:       byte(SlotIR),
	LEDs:          2,
	ModeReg:       ModeCfg,
	ShutdownBit:   7,
	ResetBit:      6,
	FIFOBase:      FIFOWrPtr,
	SpO2Reg:       SpO2Cfg,
	LEDReg:        Led1PA,
	TempConfigReg: TempCfg,
	TempConfigBit: 0,
	TempIntReg:    TempInt,
	TempFracReg:   TempFrac,
	TempReady:     DieTempReady,
	Interrupts: []max3010x.InterruptMap{
		AlmostFull:            {ConfigReg: IntEna1, ConfigBit: 7, StatusReg: IntStat1, StatusBit: 7},
		DieTempReady:          {ConfigReg: IntEna2, ConfigBit: 1, StatusReg: IntStat2, StatusBit: 1},
		NewFIFOData:           {ConfigReg: IntEna1, ConfigBit: 6, StatusReg: IntStat1, StatusBit: 6},
		AmbientLightCancelOvf: {ConfigReg: IntEna1, ConfigBit: 5, StatusReg: IntStat1, StatusBit: 5},
		PowerReady:            {ConfigReg: max3010x.Absent, ConfigBit: max3010x.Absent, StatusReg: IntStat1, StatusBit: 0},
	},
}
