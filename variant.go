package max3010x

// Registers shared by every variant.
const (
	RegRevID  = 0xFE
	RegPartID = 0xFF
)

// Absent marks an interrupt table entry that has no register on a chip.
const Absent byte = 0xFF

// Interrupt indexes the interrupt table of a Variant.
type Interrupt uint8

// InterruptMap locates the enable and status bits of one interrupt source.
// ConfigReg is Absent for sources that cannot be masked.
type InterruptMap struct {
	ConfigReg, ConfigBit byte
	StatusReg, StatusBit byte
}

func (m InterruptMap) configurable() bool {
	return m.ConfigReg != Absent && m.ConfigBit < 8
}

func (m InterruptMap) observable() bool {
	return m.StatusReg != Absent && m.StatusBit < 8
}

// Variant describes the register map of one chip of the family. Variants are
// constant data: the concrete packages declare one each and never modify it.
type Variant struct {
	Name   string
	PartID byte

	// FIFOSize is the number of samples the FIFO holds.
	FIFOSize int
	// SampleWidth is the number of bytes per slot in the FIFO data register.
	SampleWidth int
	// MaxSlots is the largest number of slots a sample can carry.
	MaxSlots int
	// MaxSlot is the largest legal slot code of the multi-LED configuration.
	MaxSlot byte
	// LEDs is the number of LED pulse amplitude registers starting at LEDReg.
	LEDs int

	ModeReg     byte
	ShutdownBit byte
	ResetBit    byte

	// FIFOBase is the write pointer register; overflow counter, read pointer
	// and data register follow it.
	FIFOBase byte
	SpO2Reg  byte
	LEDReg   byte

	TempConfigReg byte
	TempConfigBit byte
	TempIntReg    byte
	TempFracReg   byte
	TempReady     Interrupt

	Interrupts []InterruptMap
}

func (v *Variant) fifoWritePtr() byte { return v.FIFOBase }
func (v *Variant) fifoOverflow() byte { return v.FIFOBase + 1 }
func (v *Variant) fifoReadPtr() byte  { return v.FIFOBase + 2 }
func (v *Variant) fifoData() byte     { return v.FIFOBase + 3 }

func (v *Variant) interrupt(id Interrupt) (InterruptMap, bool) {
	if int(id) >= len(v.Interrupts) {
		return InterruptMap{}, false
	}

	return v.Interrupts[id], true
}
