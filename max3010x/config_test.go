package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensor.yaml")
	data := `
sensor:
  variant: max30105
  driver: goi2c
  bus: /dev/i2c-3
  address: 0x57
sampling:
  mode: multi
  slots: [red, ir, pilot-green]
  rate: 400
  averaging: 4
  led_current_ma:
    green: 12.5
filters:
  average: 8
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Sensor.Variant != "max30105" || cfg.Sensor.Bus != "/dev/i2c-3" || cfg.Sensor.Address != 0x57 {
		t.Fatalf("got sensor %+v", cfg.Sensor)
	}
	if len(cfg.Sampling.Slots) != 3 || cfg.Sampling.Slots[2] != "pilot-green" {
		t.Fatalf("got slots %v", cfg.Sampling.Slots)
	}
	if cfg.Sampling.LedCurrent["green"] != 12.5 {
		t.Fatalf("got LED currents %v", cfg.Sampling.LedCurrent)
	}
	// unset values keep their defaults
	if cfg.Sampling.TimeoutMs != 1000 || cfg.Filters.HighPassHz != 0.5 || cfg.Filters.Average != 8 {
		t.Fatalf("got sampling %+v, filters %+v", cfg.Sampling, cfg.Filters)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sensor: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{name: "default", modify: func(c *Config) {}, ok: true},
		{name: "unknown variant", modify: func(c *Config) { c.Sensor.Variant = "max30110" }},
		{name: "unknown driver", modify: func(c *Config) { c.Sensor.Driver = "spi" }},
		{name: "embd bus number", modify: func(c *Config) { c.Sensor.Driver = "embd"; c.Sensor.Bus = "1" }, ok: true},
		{name: "embd bus name", modify: func(c *Config) { c.Sensor.Driver = "embd"; c.Sensor.Bus = "/dev/i2c-1" }},
		{name: "10 bit address", modify: func(c *Config) { c.Sensor.Address = 0x157 }},
		{name: "too fast", modify: func(c *Config) { c.Sensor.SpeedKHz = 1000 }},
		{name: "unknown mode", modify: func(c *Config) { c.Sampling.Mode = "ppg" }},
		{name: "slots without multi", modify: func(c *Config) { c.Sampling.Slots = []string{"red"} }},
		{name: "multi without slots", modify: func(c *Config) { c.Sampling.Mode = "multi" }},
		{name: "multi", modify: func(c *Config) { c.Sampling.Mode = "multi"; c.Sampling.Slots = []string{"ir", "red", "ir"} }, ok: true},
		{name: "five slots", modify: func(c *Config) {
			c.Sampling.Mode = "multi"
			c.Sampling.Slots = []string{"red", "ir", "red", "ir", "red"}
		}},
		{name: "green on max30102", modify: func(c *Config) { c.Sampling.Mode = "multi"; c.Sampling.Slots = []string{"green"} }},
		{name: "multi on max30100", modify: func(c *Config) {
			c.Sensor.Variant = "max30100"
			c.Sampling.Mode = "multi"
			c.Sampling.Slots = []string{"red"}
		}},
		{name: "rate", modify: func(c *Config) { c.Sampling.Rate = 3200 }, ok: true},
		{name: "bad rate", modify: func(c *Config) { c.Sampling.Rate = 167 }},
		{name: "max30100 rate", modify: func(c *Config) { c.Sensor.Variant = "max30100"; c.Sampling.Rate = 167 }, ok: true},
		{name: "max30100 averaging", modify: func(c *Config) { c.Sensor.Variant = "max30100"; c.Sampling.Averaging = 2 }},
		{name: "bad pulse width", modify: func(c *Config) { c.Sampling.PulseWidth = 1600 }},
		{name: "bad ADC range", modify: func(c *Config) { c.Sampling.ADCRange = 1000 }},
		{name: "bad averaging", modify: func(c *Config) { c.Sampling.Averaging = 3 }},
		{name: "LED current", modify: func(c *Config) { c.Sampling.LedCurrent = map[string]float64{"ir": 51} }, ok: true},
		{name: "unknown LED", modify: func(c *Config) { c.Sampling.LedCurrent = map[string]float64{"green": 10} }},
		{name: "LED current too high", modify: func(c *Config) { c.Sampling.LedCurrent = map[string]float64{"red": 52} }},
		{name: "negative timeout", modify: func(c *Config) { c.Sampling.TimeoutMs = -1 }},
		{name: "negative filter", modify: func(c *Config) { c.Filters.LowPassHz = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestMAX30100Step(t *testing.T) {
	tests := map[float64]int{0: 0, 4: 0, 4.4: 1, 20: 5, 20.8: 6, 50: 15, 60: 15}
	for mA, want := range tests {
		if got := max30100Step(mA); int(got) != want {
			t.Errorf("%vmA: got step %d, want %d", mA, got, want)
		}
	}
}
