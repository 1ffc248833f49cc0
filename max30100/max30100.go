// Package max30100 drives the MAX30100 pulse oximetry and heart-rate sensor.
// Its FIFO always holds a 16 bit IR and a 16 bit red reading per sample.
package max30100

import (
	"encoding/binary"
	"fmt"

	"github.com/cgxeiji/max3010x/v2"
)

// Sample is one FIFO entry of a MAX30100.
type Sample struct {
	Slot  [2]uint16
	Valid bool
}

// IR returns the IR LED reading.
func (s Sample) IR() uint16 {
	return s.Slot[0]
}

// Red returns the red LED reading. It is 0 in HR mode.
func (s Sample) Red() uint16 {
	return s.Slot[1]
}

// Device defines a MAX30100 device.
type Device struct {
	*max3010x.Device[Sample]
}

type chip struct {
	d *Device
}

func (c chip) DecodeSample(data []byte, slots int) Sample {
	s := Sample{Valid: true}
	for i := 0; i < slots; i++ {
		s.Slot[i] = binary.BigEndian.Uint16(data[2*i:])
	}
	return s
}

func (c chip) DefaultConfiguration() error {
	return c.d.defaultConfiguration()
}

// New returns a new MAX30100 device on bus. The device is reset and left in
// SpO2 mode with a 16 bit resolution (1600us pulse width), 50 samples/s, an
// IR current of 20.8mA and a red current of 14.2mA.
func New(bus max3010x.Bus, opts ...max3010x.Option) (*Device, error) {
	d := &Device{}
	d.Device = max3010x.NewDevice[Sample](bus, &variant, chip{d}, opts...)

	if err := d.Reset(); err != nil {
		return nil, fmt.Errorf("max30100: could not reset device: %w", err)
	}

	return d, nil
}

func (d *Device) defaultConfiguration() error {
	if _, err := d.Options(
		LEDCurrent(LEDRed, MA14_2),
		LEDCurrent(LEDIR, MA20_8),
		PulseWidth(PW1600),
		SampleRate(SR50),
	); err != nil {
		return err
	}

	return d.SetMode(ModeSpO2)
}

// SetMode sets the measurement mode and clears the FIFO.
func (d *Device) SetMode(mode Mode) error {
	if mode != ModeHR && mode != ModeSpO2 {
		return fmt.Errorf("max30100: mode %#b: %w", byte(mode), max3010x.ErrInvalidMode)
	}

	return d.WriteMode(byte(mode))
}
