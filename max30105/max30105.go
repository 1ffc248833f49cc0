// Package max30105 drives the MAX30105 particle sensor, which has a red, an
// IR and a green LED plus a pilot LED amplitude used for proximity detection.
package max30105

import (
	"fmt"

	"github.com/cgxeiji/max3010x/v2"
)

// Registers specific to the chip.
const (
	RegLed1PA        = 0x0C
	RegLed2PA        = 0x0D
	RegLed3PA        = 0x0E
	RegPilotPA       = 0x10
	RegProxIntThresh = 0x30
)

// PartID is the part ID as set by the manufacturer.
const PartID = 0x15

// Interrupts
const (
	AlmostFull max3010x.Interrupt = iota
	DieTempReady
	PPGReady
	AmbientLightCancelOvf
	ProximityReady
	PowerReady
)

// LED selects one of the LEDs.
type LED int

// LEDs
const (
	LEDRed LED = iota
	LEDIR
	LEDGreen
)

// Multi-LED slot codes. The pilot codes fire the LED with the pilot
// amplitude instead of its own.
const (
	SlotOff                      = max3010x.SlotOff
	SlotRed        max3010x.Slot = 1
	SlotIR         max3010x.Slot = 2
	SlotGreen      max3010x.Slot = 3
	SlotPilotOff   max3010x.Slot = 4
	SlotPilotRed   max3010x.Slot = 5
	SlotPilotIR    max3010x.Slot = 6
	SlotPilotGreen max3010x.Slot = 7
)

var variant = max3010x.Variant{
	Name:          "MAX30105",
	PartID:        PartID,
	FIFOSize:      32,
	SampleWidth:   3,
	MaxSlots:      4,
	MaxSlot:       byte(SlotPilotGreen),
	LEDs:          3,
	ModeReg:       0x09,
	ShutdownBit:   7,
	ResetBit:      6,
	FIFOBase:      0x04,
	SpO2Reg:       0x0A,
	LEDReg:        RegLed1PA,
	TempConfigReg: 0x21,
	TempConfigBit: 0,
	TempIntReg:    0x1F,
	TempFracReg:   0x20,
	TempReady:     DieTempReady,
	Interrupts: []max3010x.InterruptMap{
		AlmostFull:            {ConfigReg: 0x02, ConfigBit: 7, StatusReg: 0x00, StatusBit: 7},
		DieTempReady:          {ConfigReg: 0x03, ConfigBit: 1, StatusReg: 0x01, StatusBit: 1},
		PPGReady:              {ConfigReg: 0x02, ConfigBit: 6, StatusReg: 0x00, StatusBit: 6},
		AmbientLightCancelOvf: {ConfigReg: 0x02, ConfigBit: 5, StatusReg: 0x00, StatusBit: 5},
		ProximityReady:        {ConfigReg: 0x02, ConfigBit: 4, StatusReg: 0x00, StatusBit: 4},
		PowerReady:            {ConfigReg: max3010x.Absent, ConfigBit: max3010x.Absent, StatusReg: 0x00, StatusBit: 0},
	},
}

// Sample is one FIFO entry. Red and IR return the classic mode readings.
type Sample = max3010x.Sample

// Device defines a MAX30105 device.
type Device struct {
	*max3010x.MultiLed
}

// New returns a new MAX30105 device on bus. The device is reset and left in
// SpO2 mode with an 18 bit resolution, 50 samples/s, no sample averaging, a
// 16384nA ADC range and FIFO rollover enabled.
func New(bus max3010x.Bus, opts ...max3010x.Option) (*Device, error) {
	d := &Device{}
	d.MultiLed = max3010x.NewMultiLed(bus, &variant, d.defaultConfiguration, opts...)

	if err := d.Reset(); err != nil {
		return nil, fmt.Errorf("max30105: could not reset device: %w", err)
	}

	return d, nil
}

func (d *Device) defaultConfiguration() error {
	if err := d.SetMultiLedConfiguration([4]max3010x.Slot{}); err != nil {
		return err
	}
	if err := d.SetLedCurrent(LEDRed, 90); err != nil {
		return err
	}
	if err := d.SetLedCurrent(LEDIR, 80); err != nil {
		return err
	}
	if err := d.SetLedCurrent(LEDGreen, 100); err != nil {
		return err
	}
	if err := d.SetProximityLedCurrent(0); err != nil {
		return err
	}
	if _, err := d.Options(
		max3010x.PulseWidth(max3010x.PW411),
		max3010x.SampleRate(max3010x.SR50),
		max3010x.SampleAveraging(max3010x.Avg1),
		max3010x.ADCRange(max3010x.ADC16384),
		max3010x.FIFORollover(true),
	); err != nil {
		return err
	}

	return d.SetMode(max3010x.ModeSpO2)
}

// SetLedCurrent sets the pulse amplitude of a LED in steps of 0.2 mA.
func (d *Device) SetLedCurrent(led LED, current byte) error {
	return d.MultiLed.SetLedCurrent(int(led), current)
}

// SetProximityLedCurrent sets the pilot pulse amplitude used by the pilot
// slots and proximity detection, in steps of 0.2 mA.
func (d *Device) SetProximityLedCurrent(current byte) error {
	if err := d.Conn().Write(RegPilotPA, current); err != nil {
		return fmt.Errorf("max30105: could not configure pilot LED current: %w", err)
	}
	return nil
}

// SetProximityThreshold sets the IR ADC count that triggers the proximity
// interrupt. The threshold is compared with the 8 most significant bits of
// the ADC.
func (d *Device) SetProximityThreshold(threshold byte) error {
	if err := d.Conn().Write(RegProxIntThresh, threshold); err != nil {
		return fmt.Errorf("max30105: could not configure proximity threshold: %w", err)
	}
	return nil
}

// Green returns the reading of the third slot of a multi-LED sample
// configured as red, IR, green.
func Green(s Sample) uint32 {
	return s.Slot[2]
}
