package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"periph.io/x/periph/conn/physic"

	"github.com/cgxeiji/max3010x/v2"
	"github.com/cgxeiji/max3010x/v2/bus"
	"github.com/cgxeiji/max3010x/v2/filter"
	"github.com/cgxeiji/max3010x/v2/max30100"
	"github.com/cgxeiji/max3010x/v2/max30101"
	"github.com/cgxeiji/max3010x/v2/max30102"
	"github.com/cgxeiji/max3010x/v2/max30105"
)

// device is the part of the drivers the command uses for every variant.
type device interface {
	ReadPartID() (byte, error)
	ReadRevisionID() (byte, error)
	ReadTemperature() (float64, error)
	Shutdown() error
}

type sensor struct {
	name     string
	dev      device
	channels []string
	read     func(timeout time.Duration) ([]float64, error)
}

func openBus(s SensorConfig) (max3010x.Bus, func() error, error) {
	switch s.Driver {
	case "goi2c":
		dev := s.Bus
		if dev == "" {
			dev = "/dev/i2c-1"
		}
		g, err := bus.OpenGoI2C(dev, uint8(s.Address))
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil

	case "embd":
		l := uint64(1)
		if s.Bus != "" {
			l, _ = strconv.ParseUint(s.Bus, 10, 8)
		}
		e, err := bus.OpenEmbd(byte(l))
		if err != nil {
			return nil, nil, err
		}
		return e, e.Close, nil

	default:
		b, err := bus.Open(s.Bus, physic.Frequency(s.SpeedKHz)*physic.KiloHertz)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	}
}

func newSensor(b max3010x.Bus, cfg *Config, opts ...max3010x.Option) (*sensor, error) {
	switch cfg.Sensor.Variant {
	case "max30100":
		d, err := max30100.New(b, opts...)
		if err != nil {
			return nil, err
		}
		return setupMAX30100(d, cfg.Sampling)
	case "max30101":
		d, err := max30101.New(b, opts...)
		if err != nil {
			return nil, err
		}
		return setupMultiLed("MAX30101", d.MultiLed, cfg)
	case "max30102":
		d, err := max30102.New(b, opts...)
		if err != nil {
			return nil, err
		}
		return setupMultiLed("MAX30102", d.MultiLed, cfg)
	case "max30105":
		d, err := max30105.New(b, opts...)
		if err != nil {
			return nil, err
		}
		return setupMultiLed("MAX30105", d.MultiLed, cfg)
	}

	return nil, fmt.Errorf("unknown variant %q", cfg.Sensor.Variant)
}

func setupMultiLed(name string, m *max3010x.MultiLed, cfg *Config) (*sensor, error) {
	s := cfg.Sampling
	v := variants[cfg.Sensor.Variant]

	var settings []max3010x.Setting
	if s.Rate != 0 {
		settings = append(settings, max3010x.SampleRate(multiRates[s.Rate]))
	}
	if s.PulseWidth != 0 {
		settings = append(settings, max3010x.PulseWidth(multiWidths[s.PulseWidth]))
	}
	if s.ADCRange != 0 {
		settings = append(settings, max3010x.ADCRange(multiRanges[s.ADCRange]))
	}
	if s.Averaging != 0 {
		settings = append(settings, max3010x.SampleAveraging(multiAverages[s.Averaging]))
	}
	if _, err := m.Options(settings...); err != nil {
		return nil, err
	}
	for led, mA := range s.LedCurrent {
		if err := m.SetLedCurrent(v.leds[led], max3010x.Current(mA)); err != nil {
			return nil, err
		}
	}

	var channels []string
	switch s.Mode {
	case "hr":
		channels = []string{"red"}
		if err := m.SetMode(max3010x.ModeHROnly); err != nil {
			return nil, err
		}
	case "spo2":
		channels = []string{"red", "ir"}
		if err := m.SetMode(max3010x.ModeSpO2); err != nil {
			return nil, err
		}
	case "multi":
		var slots [4]max3010x.Slot
		for i, name := range s.Slots {
			slots[i] = v.slots[name]
		}
		channels = s.Slots
		if err := m.SetMultiLedConfiguration(slots); err != nil {
			return nil, err
		}
		if err := m.SetMode(max3010x.ModeMultiLed); err != nil {
			return nil, err
		}
	}

	return &sensor{
		name:     name,
		dev:      m,
		channels: channels,
		read: func(timeout time.Duration) ([]float64, error) {
			smp, err := m.ReadSample(timeout)
			if err != nil {
				return nil, err
			}
			out := make([]float64, m.ActiveSlots())
			for i := range out {
				out[i] = float64(smp.Slot[i])
			}
			return out, nil
		},
	}, nil
}

func setupMAX30100(d *max30100.Device, s SamplingConfig) (*sensor, error) {
	var settings []max30100.Setting
	if s.Rate != 0 {
		settings = append(settings, max30100.SampleRate(max30100Rates[s.Rate]))
	}
	if s.PulseWidth != 0 {
		settings = append(settings, max30100.PulseWidth(max30100Widths[s.PulseWidth]))
	}
	for led, mA := range s.LedCurrent {
		settings = append(settings, max30100.LEDCurrent(max30100.LED(variants["max30100"].leds[led]), max30100Step(mA)))
	}
	if _, err := d.Options(settings...); err != nil {
		return nil, err
	}

	channels := []string{"ir", "red"}
	mode := max30100.ModeSpO2
	if s.Mode == "hr" {
		channels = channels[:1]
		mode = max30100.ModeHR
	}
	if err := d.SetMode(mode); err != nil {
		return nil, err
	}

	return &sensor{
		name:     "MAX30100",
		dev:      d,
		channels: channels,
		read: func(timeout time.Duration) ([]float64, error) {
			smp, err := d.ReadSample(timeout)
			if err != nil {
				return nil, err
			}
			return []float64{float64(smp.IR()), float64(smp.Red())}[:len(channels)], nil
		},
	}, nil
}

// newChain returns the filter pipeline of one channel sampled at rate.
func newChain(f FilterConfig, rate physic.Frequency) filter.Chain {
	var c filter.Chain
	if f.HighPassHz > 0 {
		c = append(c, filter.HighPassCutoff(physic.Frequency(f.HighPassHz*float64(physic.Hertz)), rate))
	}
	if f.LowPassHz > 0 {
		c = append(c, filter.LowPassCutoff(physic.Frequency(f.LowPassHz*float64(physic.Hertz)), rate))
	}
	if f.Average > 1 {
		c = append(c, filter.NewMovingAverage(f.Average))
	}
	return c
}

// sampleRate returns the rate at which samples reach the FIFO.
func sampleRate(s SamplingConfig) physic.Frequency {
	rate := s.Rate
	if rate == 0 {
		rate = 50
	}
	if s.Averaging > 1 {
		return physic.Frequency(rate) * physic.Hertz / physic.Frequency(s.Averaging)
	}
	return physic.Frequency(rate) * physic.Hertz
}

// stream reads samples until ctx is done or n samples were read, when n is
// not 0, and writes one line per sample with the raw and filtered value of
// every channel.
func stream(ctx context.Context, s *sensor, cfg *Config, n int, w io.Writer) error {
	rate := sampleRate(cfg.Sampling)
	chains := make([]filter.Chain, len(s.channels))
	for i := range chains {
		chains[i] = newChain(cfg.Filters, rate)
	}
	timeout := time.Duration(cfg.Sampling.TimeoutMs) * time.Millisecond

	var line strings.Builder
	for i := 0; n == 0 || i < n; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		values, err := s.read(timeout)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}

		line.Reset()
		for j, v := range values {
			if j > 0 {
				line.WriteByte('\t')
			}
			fmt.Fprintf(&line, "%s=%.0f/%.2f", s.channels[j], v, chains[j].Process(v))
		}
		fmt.Fprintln(w, line.String())
	}

	return nil
}
