package max3010x

import "fmt"

// Rate is the SpO2 sample rate control of the multi-LED variants.
type Rate byte

// Sample rates in samples per second.
const (
	SR50 Rate = iota
	SR100
	SR200
	SR400
	SR800
	SR1000
	SR1600
	SR3200
)

// Range is the full scale of the SpO2 ADC.
type Range byte

// ADC ranges in nA.
const (
	ADC2048 Range = iota
	ADC4096
	ADC8192
	ADC16384
)

// Resolution is the LED pulse width, which sets the ADC resolution.
type Resolution byte

// Pulse widths in µs and their resolution.
const (
	PW69  Resolution = iota // 15 bits
	PW118                   // 16 bits
	PW215                   // 17 bits
	PW411                   // 18 bits
)

// Averaging is the number of adjacent samples averaged per FIFO entry.
type Averaging byte

// Sample averaging.
const (
	Avg1 Averaging = iota
	Avg2
	Avg4
	Avg8
	Avg16
	Avg32
)

// Bit fields of the SpO2 and FIFO configuration registers.
const (
	resShift, resMask     = 0, 0b11
	rateShift, rateMask   = 2, 0b111
	rangeShift, rangeMask = 5, 0b11

	aFullShift, aFullMask = 0, 0b1111
	rolloverBit           = 4
	avgShift, avgMask     = 5, 0b111
)

// Setting defines a configuration setting of a multi-LED device. Applying it
// returns the setting that restores the previous value.
type Setting func(m *MultiLed) (Setting, error)

// Options applies settings in order and returns the restoring setting of the
// last one. It stops at the first failure.
func (m *MultiLed) Options(settings ...Setting) (Setting, error) {
	var old Setting
	var err error
	for _, s := range settings {
		old, err = s(m)
		if err != nil {
			return nil, err
		}
	}

	return old, nil
}

func (m *MultiLed) apply(s Setting) error {
	_, err := s(m)
	return err
}

// SampleRate sets the SpO2 sample rate control of the device.
func SampleRate(r Rate) Setting {
	return func(m *MultiLed) (Setting, error) {
		old, err := m.conn.SetField(m.v.SpO2Reg, rateShift, rateMask, byte(r))
		if err != nil {
			return nil, fmt.Errorf("max3010x: could not configure sample rate: %w", err)
		}

		return SampleRate(Rate(old)), nil
	}
}

// ADCRange sets the full scale of the SpO2 ADC.
func ADCRange(r Range) Setting {
	return func(m *MultiLed) (Setting, error) {
		old, err := m.conn.SetField(m.v.SpO2Reg, rangeShift, rangeMask, byte(r))
		if err != nil {
			return nil, fmt.Errorf("max3010x: could not configure ADC range: %w", err)
		}

		return ADCRange(Range(old)), nil
	}
}

// PulseWidth sets the LED pulse width and with it the ADC resolution.
func PulseWidth(pw Resolution) Setting {
	return func(m *MultiLed) (Setting, error) {
		old, err := m.conn.SetField(m.v.SpO2Reg, resShift, resMask, byte(pw))
		if err != nil {
			return nil, fmt.Errorf("max3010x: could not configure pulse width: %w", err)
		}

		return PulseWidth(Resolution(old)), nil
	}
}

// SampleAveraging sets how many samples are averaged per FIFO entry.
func SampleAveraging(a Averaging) Setting {
	return func(m *MultiLed) (Setting, error) {
		old, err := m.conn.SetField(RegFIFOConfig, avgShift, avgMask, byte(a))
		if err != nil {
			return nil, fmt.Errorf("max3010x: could not configure sample averaging: %w", err)
		}

		return SampleAveraging(Averaging(old)), nil
	}
}

// AlmostFullValue sets how many free FIFO entries trigger the almost full
// interrupt. It can take values from 0 to 15.
func AlmostFullValue(left byte) Setting {
	return func(m *MultiLed) (Setting, error) {
		old, err := m.conn.SetField(RegFIFOConfig, aFullShift, aFullMask, left)
		if err != nil {
			return nil, fmt.Errorf("max3010x: could not configure almost full value to %d: %w", left, err)
		}

		return AlmostFullValue(old), nil
	}
}

// FIFORollover sets whether a full FIFO overwrites its oldest samples.
func FIFORollover(on bool) Setting {
	return func(m *MultiLed) (Setting, error) {
		old, err := m.conn.ReadBit(RegFIFOConfig, rolloverBit)
		if err != nil {
			return nil, fmt.Errorf("max3010x: could not configure FIFO rollover: %w", err)
		}
		if err := m.conn.SetBit(RegFIFOConfig, rolloverBit, on); err != nil {
			return nil, fmt.Errorf("max3010x: could not configure FIFO rollover: %w", err)
		}

		return FIFORollover(old), nil
	}
}

// SetSampleRate sets the SpO2 sample rate control of the device.
func (m *MultiLed) SetSampleRate(r Rate) error { return m.apply(SampleRate(r)) }

// SetADCRange sets the full scale of the SpO2 ADC.
func (m *MultiLed) SetADCRange(r Range) error { return m.apply(ADCRange(r)) }

// SetResolution sets the LED pulse width and with it the ADC resolution.
func (m *MultiLed) SetResolution(pw Resolution) error { return m.apply(PulseWidth(pw)) }

// SetSampleAveraging sets how many samples are averaged per FIFO entry.
func (m *MultiLed) SetSampleAveraging(a Averaging) error { return m.apply(SampleAveraging(a)) }

// SetAlmostFullValue sets the almost full interrupt threshold.
func (m *MultiLed) SetAlmostFullValue(left byte) error { return m.apply(AlmostFullValue(left)) }

// EnableFIFORollover lets a full FIFO overwrite its oldest samples.
func (m *MultiLed) EnableFIFORollover() error { return m.apply(FIFORollover(true)) }

// DisableFIFORollover stops a full FIFO from accepting new samples.
func (m *MultiLed) DisableFIFORollover() error { return m.apply(FIFORollover(false)) }

// SampleRate returns the configured sample rate.
func (m *MultiLed) SampleRate() (Rate, error) {
	v, err := m.conn.Field(m.v.SpO2Reg, rateShift, rateMask)
	return Rate(v), err
}

// ADCRange returns the configured ADC range.
func (m *MultiLed) ADCRange() (Range, error) {
	v, err := m.conn.Field(m.v.SpO2Reg, rangeShift, rangeMask)
	return Range(v), err
}

// Resolution returns the configured pulse width.
func (m *MultiLed) Resolution() (Resolution, error) {
	v, err := m.conn.Field(m.v.SpO2Reg, resShift, resMask)
	return Resolution(v), err
}

// SampleAveraging returns the configured sample averaging.
func (m *MultiLed) SampleAveraging() (Averaging, error) {
	v, err := m.conn.Field(RegFIFOConfig, avgShift, avgMask)
	return Averaging(v), err
}

// Current converts a LED pulse amplitude in mA to its register value. It
// accepts values from 0.0 to 51.0 mA and the value is rounded down to the
// nearest multiple of 0.2.
func Current(mA float64) byte {
	if mA > 51 {
		mA = 51
	}
	if mA < 0 {
		mA = 0
	}
	return byte(mA*5 + 1e-9)
}
