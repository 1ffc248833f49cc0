package max30100

import (
	"fmt"

	"github.com/cgxeiji/max3010x/v2"
)

// Setting defines a configuration setting of the device. Applying it returns
// the setting that restores the previous value.
type Setting func(d *Device) (Setting, error)

// Options applies settings in order and returns the restoring setting of the
// last one.
func (d *Device) Options(settings ...Setting) (Setting, error) {
	var old Setting
	var err error
	for _, s := range settings {
		old, err = s(d)
		if err != nil {
			return nil, err
		}
	}

	return old, nil
}

// SampleRate sets the SpO2 sample rate control of the device.
func SampleRate(r Rate) Setting {
	return func(d *Device) (Setting, error) {
		old, err := d.Conn().SetField(SpO2Cfg, rateShift, rateMask, byte(r))
		if err != nil {
			return nil, fmt.Errorf("max30100: could not configure sample rate: %w", err)
		}

		return SampleRate(Rate(old)), nil
	}
}

// PulseWidth sets the LED pulse width and with it the ADC resolution.
func PulseWidth(pw Resolution) Setting {
	return func(d *Device) (Setting, error) {
		old, err := d.Conn().SetField(SpO2Cfg, resShift, resMask, byte(pw))
		if err != nil {
			return nil, fmt.Errorf("max30100: could not configure pulse width: %w", err)
		}

		return PulseWidth(Resolution(old)), nil
	}
}

// LEDCurrent sets the current of one LED. The IR LED uses the low nibble of
// the LED configuration register and the red LED the high one.
func LEDCurrent(led LED, c LedCurrent) Setting {
	return func(d *Device) (Setting, error) {
		if led != LEDIR && led != LEDRed {
			return nil, fmt.Errorf("max30100: LED %d: %w", led, max3010x.ErrOutOfRange)
		}
		old, err := d.Conn().SetField(LedCfg, 4*byte(led), ledMask, byte(c))
		if err != nil {
			return nil, fmt.Errorf("max30100: could not configure LED %d current: %w", led, err)
		}

		return LEDCurrent(led, LedCurrent(old)), nil
	}
}

// SetSamplingRate sets the SpO2 sample rate control of the device.
func (d *Device) SetSamplingRate(r Rate) error {
	_, err := SampleRate(r)(d)
	return err
}

// SetResolution sets the LED pulse width and with it the ADC resolution.
func (d *Device) SetResolution(pw Resolution) error {
	_, err := PulseWidth(pw)(d)
	return err
}

// SetLedCurrent sets the current of one LED.
func (d *Device) SetLedCurrent(led LED, c LedCurrent) error {
	_, err := LEDCurrent(led, c)(d)
	return err
}

// SamplingRate returns the configured sample rate.
func (d *Device) SamplingRate() (Rate, error) {
	v, err := d.Conn().Field(SpO2Cfg, rateShift, rateMask)
	return Rate(v), err
}

// Resolution returns the configured pulse width.
func (d *Device) Resolution() (Resolution, error) {
	v, err := d.Conn().Field(SpO2Cfg, resShift, resMask)
	return Resolution(v), err
}

// LedCurrent returns the configured current of one LED.
func (d *Device) LedCurrent(led LED) (LedCurrent, error) {
	if led != LEDIR && led != LEDRed {
		return 0, fmt.Errorf("max30100: LED %d: %w", led, max3010x.ErrOutOfRange)
	}
	v, err := d.Conn().Field(LedCfg, 4*byte(led), ledMask)
	return LedCurrent(v), err
}
