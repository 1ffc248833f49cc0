package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cgxeiji/max3010x/v2"
	"github.com/cgxeiji/max3010x/v2/max30100"
	"github.com/cgxeiji/max3010x/v2/max30101"
	"github.com/cgxeiji/max3010x/v2/max30102"
	"github.com/cgxeiji/max3010x/v2/max30105"
)

// Config is the YAML configuration of the command. Zero values keep the
// power-on defaults of the driver.
type Config struct {
	Sensor   SensorConfig   `yaml:"sensor"`
	Sampling SamplingConfig `yaml:"sampling"`
	Filters  FilterConfig   `yaml:"filters"`
}

// ---- SENSOR ----

type SensorConfig struct {
	Variant  string `yaml:"variant"`
	Driver   string `yaml:"driver"` // periph, goi2c or embd
	Bus      string `yaml:"bus"`    // bus name, device file or bus number
	Address  uint16 `yaml:"address"`
	SpeedKHz int    `yaml:"speed_khz"`
	Trace    bool   `yaml:"trace"`
}

// ---- SAMPLING ----

type SamplingConfig struct {
	Mode       string             `yaml:"mode"` // hr, spo2 or multi
	Slots      []string           `yaml:"slots"`
	Rate       int                `yaml:"rate"`        // samples/s
	PulseWidth int                `yaml:"pulse_width"` // µs
	ADCRange   int                `yaml:"adc_range"`   // nA
	Averaging  int                `yaml:"averaging"`
	LedCurrent map[string]float64 `yaml:"led_current_ma"`
	TimeoutMs  int                `yaml:"timeout_ms"`
}

// ---- FILTERS ----

type FilterConfig struct {
	HighPassHz float64 `yaml:"high_pass_hz"`
	LowPassHz  float64 `yaml:"low_pass_hz"`
	Average    int     `yaml:"average"`
}

// Default returns the configuration used without a configuration file.
func Default() *Config {
	return &Config{
		Sensor: SensorConfig{
			Variant: "max30102",
			Driver:  "periph",
			Address: max3010x.Addr,
		},
		Sampling: SamplingConfig{
			Mode:      "spo2",
			TimeoutMs: 1000,
		},
		Filters: FilterConfig{
			HighPassHz: 0.5,
			LowPassHz:  5,
			Average:    4,
		},
	}
}

// Load reads a configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

type variantInfo struct {
	slots  map[string]max3010x.Slot // nil without multi-LED mode
	leds   map[string]int
	maxmA  float64
	family string
}

var variants = map[string]variantInfo{
	"max30100": {
		leds:   map[string]int{"ir": int(max30100.LEDIR), "red": int(max30100.LEDRed)},
		maxmA:  50,
		family: "max30100",
	},
	"max30101": {
		slots: map[string]max3010x.Slot{
			"red":   max30101.SlotRed,
			"ir":    max30101.SlotIR,
			"green": max30101.SlotGreen,
		},
		leds: map[string]int{
			"red":    int(max30101.LEDRed),
			"ir":     int(max30101.LEDIR),
			"green":  int(max30101.LEDGreen),
			"green2": int(max30101.LEDGreen2),
		},
		maxmA: 51,
	},
	"max30102": {
		slots: map[string]max3010x.Slot{
			"red": max30102.SlotRed,
			"ir":  max30102.SlotIR,
		},
		leds:  map[string]int{"red": int(max30102.LEDRed), "ir": int(max30102.LEDIR)},
		maxmA: 51,
	},
	"max30105": {
		slots: map[string]max3010x.Slot{
			"red":         max30105.SlotRed,
			"ir":          max30105.SlotIR,
			"green":       max30105.SlotGreen,
			"pilot-red":   max30105.SlotPilotRed,
			"pilot-ir":    max30105.SlotPilotIR,
			"pilot-green": max30105.SlotPilotGreen,
		},
		leds: map[string]int{
			"red":   int(max30105.LEDRed),
			"ir":    int(max30105.LEDIR),
			"green": int(max30105.LEDGreen),
		},
		maxmA: 51,
	},
}

var (
	multiRates = map[int]max3010x.Rate{
		50: max3010x.SR50, 100: max3010x.SR100, 200: max3010x.SR200, 400: max3010x.SR400,
		800: max3010x.SR800, 1000: max3010x.SR1000, 1600: max3010x.SR1600, 3200: max3010x.SR3200,
	}
	multiWidths = map[int]max3010x.Resolution{
		69: max3010x.PW69, 118: max3010x.PW118, 215: max3010x.PW215, 411: max3010x.PW411,
	}
	multiRanges = map[int]max3010x.Range{
		2048: max3010x.ADC2048, 4096: max3010x.ADC4096, 8192: max3010x.ADC8192, 16384: max3010x.ADC16384,
	}
	multiAverages = map[int]max3010x.Averaging{
		1: max3010x.Avg1, 2: max3010x.Avg2, 4: max3010x.Avg4, 8: max3010x.Avg8, 16: max3010x.Avg16, 32: max3010x.Avg32,
	}

	max30100Rates = map[int]max30100.Rate{
		50: max30100.SR50, 100: max30100.SR100, 167: max30100.SR167, 200: max30100.SR200,
		400: max30100.SR400, 600: max30100.SR600, 800: max30100.SR800, 1000: max30100.SR1000,
	}
	max30100Widths = map[int]max30100.Resolution{
		200: max30100.PW200, 400: max30100.PW400, 800: max30100.PW800, 1600: max30100.PW1600,
	}
	// current of each max30100.LedCurrent step in mA
	max30100Currents = []float64{0, 4.4, 7.6, 11, 14.2, 17.4, 20.8, 24, 27.1, 30.6, 33.8, 37, 40.2, 43.6, 46.8, 50}
)

// max30100Step returns the largest current step not above mA.
func max30100Step(mA float64) max30100.LedCurrent {
	step := 0
	for i, c := range max30100Currents {
		if c <= mA {
			step = i
		}
	}
	return max30100.LedCurrent(step)
}

// Validate checks the configuration. It does not modify it.
func Validate(cfg *Config) error {
	s := cfg.Sensor
	v, ok := variants[s.Variant]
	if !ok {
		return fmt.Errorf("sensor: unknown variant %q", s.Variant)
	}

	switch s.Driver {
	case "periph", "goi2c":
	case "embd":
		if s.Bus != "" {
			if _, err := strconv.ParseUint(s.Bus, 10, 8); err != nil {
				return fmt.Errorf("sensor: embd bus %q is not a bus number", s.Bus)
			}
		}
	default:
		return fmt.Errorf("sensor: unknown driver %q", s.Driver)
	}
	if s.Address == 0 || s.Address > 0x7F {
		return fmt.Errorf("sensor: address %#02x is not a 7 bit address", s.Address)
	}
	if s.SpeedKHz < 0 || s.SpeedKHz > 400 {
		return fmt.Errorf("sensor: speed %dkHz is out of range", s.SpeedKHz)
	}

	m := cfg.Sampling
	switch m.Mode {
	case "hr", "spo2":
		if len(m.Slots) != 0 {
			return fmt.Errorf("sampling: slots need multi mode, not %q", m.Mode)
		}
	case "multi":
		if v.slots == nil {
			return fmt.Errorf("sampling: %s has no multi-LED mode", s.Variant)
		}
		if len(m.Slots) == 0 || len(m.Slots) > 4 {
			return fmt.Errorf("sampling: multi mode needs 1 to 4 slots, got %d", len(m.Slots))
		}
		for _, name := range m.Slots {
			if _, ok := v.slots[name]; !ok {
				return fmt.Errorf("sampling: %s has no slot %q", s.Variant, name)
			}
		}
	default:
		return fmt.Errorf("sampling: unknown mode %q", m.Mode)
	}

	if v.family == "max30100" {
		if _, ok := max30100Rates[m.Rate]; m.Rate != 0 && !ok {
			return fmt.Errorf("sampling: %s does not sample at %d/s", s.Variant, m.Rate)
		}
		if _, ok := max30100Widths[m.PulseWidth]; m.PulseWidth != 0 && !ok {
			return fmt.Errorf("sampling: %s has no %dµs pulse width", s.Variant, m.PulseWidth)
		}
		if m.ADCRange != 0 || m.Averaging != 0 {
			return fmt.Errorf("sampling: %s has no ADC range or sample averaging", s.Variant)
		}
	} else {
		if _, ok := multiRates[m.Rate]; m.Rate != 0 && !ok {
			return fmt.Errorf("sampling: %s does not sample at %d/s", s.Variant, m.Rate)
		}
		if _, ok := multiWidths[m.PulseWidth]; m.PulseWidth != 0 && !ok {
			return fmt.Errorf("sampling: %s has no %dµs pulse width", s.Variant, m.PulseWidth)
		}
		if _, ok := multiRanges[m.ADCRange]; m.ADCRange != 0 && !ok {
			return fmt.Errorf("sampling: %s has no %dnA ADC range", s.Variant, m.ADCRange)
		}
		if _, ok := multiAverages[m.Averaging]; m.Averaging != 0 && !ok {
			return fmt.Errorf("sampling: %s cannot average %d samples", s.Variant, m.Averaging)
		}
	}

	for name, mA := range m.LedCurrent {
		if _, ok := v.leds[name]; !ok {
			return fmt.Errorf("sampling: %s has no LED %q", s.Variant, name)
		}
		if mA < 0 || mA > v.maxmA {
			return fmt.Errorf("sampling: LED %q current %vmA is out of range", name, mA)
		}
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("sampling: negative timeout")
	}

	f := cfg.Filters
	if f.HighPassHz < 0 || f.LowPassHz < 0 || f.Average < 0 {
		return fmt.Errorf("filters: negative values")
	}

	return nil
}
