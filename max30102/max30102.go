// Package max30102 drives the MAX30102 pulse oximetry and heart-rate sensor,
// which has a red and an IR LED.
package max30102

import (
	"fmt"

	"github.com/cgxeiji/max3010x/v2"
)

// Sample is one FIFO entry. Red and IR return the classic mode readings.
type Sample = max3010x.Sample

// Device defines a MAX30102 device.
type Device struct {
	*max3010x.MultiLed
}

// New returns a new MAX30102 device on bus. The device is reset and left in
// SpO2 mode with an 18 bit resolution (411us pulse width), 50 samples/s, no
// sample averaging, a 16384nA ADC range and FIFO rollover enabled.
func New(bus max3010x.Bus, opts ...max3010x.Option) (*Device, error) {
	d := &Device{}
	d.MultiLed = max3010x.NewMultiLed(bus, &variant, d.defaultConfiguration, opts...)

	if err := d.Reset(); err != nil {
		return nil, fmt.Errorf("max30102: could not reset device: %w", err)
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

// SetPulseAmp sets the pulse amplitude of a LED. It accepts values from 0.0
// to 51.0 mA and the value is rounded down to the nearest multiple of 0.2.
func (d *Device) SetPulseAmp(led LED, mA float64) error {
	return d.SetLedCurrent(led, max3010x.Current(mA))
}
