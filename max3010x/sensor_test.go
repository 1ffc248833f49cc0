package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"periph.io/x/periph/conn/physic"

	"github.com/cgxeiji/max3010x/v2"
	"github.com/cgxeiji/max3010x/v2/internal/regtest"
)

func newBus(part byte, modeReg, tempReg, tempBit, statusReg, statusBit, intReg byte) *regtest.Bus {
	return regtest.New(max3010x.Addr, part, &regtest.Sim{
		ModeReg:       modeReg,
		ResetBit:      6,
		TempConfigReg: tempReg,
		TempConfigBit: tempBit,
		TempStatusReg: statusReg,
		TempStatusBit: statusBit,
		TempIntReg:    intReg,
		TempFracReg:   intReg + 1,
		TempInt:       30,
	})
}

func TestStreamMultiLed(t *testing.T) {
	b := newBus(0x15, 0x09, 0x21, 0, 0x01, 1, 0x1F)
	cfg := Default()
	cfg.Sampling.Mode = "multi"
	cfg.Sampling.Slots = []string{"ir", "red"}
	cfg.Sampling.Rate = 100
	cfg.Sampling.LedCurrent = map[string]float64{"ir": 10}

	s, err := newSensor(b, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Regs[0x09]&0b111 != 0b111 || b.Regs[0x11] != 0x12 || b.Regs[0x0D] != 50 {
		t.Fatalf("got mode %#x, slots %#x, IR current %d", b.Regs[0x09], b.Regs[0x11], b.Regs[0x0D])
	}
	if temp, err := s.dev.ReadTemperature(); err != nil || temp != 30 {
		t.Fatalf("got %v, %v, want 30", temp, err)
	}

	b.Regs[0x04] = 2
	b.Queues[0x07] = []byte{
		0, 0, 10, 0, 0, 20,
		0, 0, 11, 0, 0, 21,
	}
	var out bytes.Buffer
	if err := stream(context.Background(), s, cfg, 2, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out.String())
	}
	if lines[0] != "ir=10/0.00\tred=20/0.00" {
		t.Fatalf("got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ir=11/") || !strings.Contains(lines[1], "\tred=21/") {
		t.Fatalf("got %q", lines[1])
	}
}

func TestStreamMAX30100(t *testing.T) {
	b := newBus(0x11, 0x06, 0x06, 3, 0x00, 6, 0x16)
	cfg := Default()
	cfg.Sensor.Variant = "max30100"
	cfg.Sampling.Mode = "hr"
	cfg.Sampling.Rate = 100
	cfg.Sampling.LedCurrent = map[string]float64{"ir": 50}

	s, err := newSensor(b, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Regs[0x06]&0b111 != 0b010 || b.Regs[0x07]>>2&0b111 != 1 || b.Regs[0x09]&0x0F != 15 {
		t.Fatalf("got mode %#x, SpO2 %#x, LED %#x", b.Regs[0x06], b.Regs[0x07], b.Regs[0x09])
	}

	b.Regs[0x02] = 1
	b.Queues[0x05] = []byte{0x01, 0x00, 0x00, 0x00}
	cfg.Filters = FilterConfig{}
	var out bytes.Buffer
	if err := stream(context.Background(), s, cfg, 1, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "ir=256/256.00" {
		t.Fatalf("got %q", got)
	}
}

func TestStreamStops(t *testing.T) {
	reads := 0
	s := &sensor{
		channels: []string{"red"},
		read: func(time.Duration) ([]float64, error) {
			reads++
			return []float64{1}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if err := stream(ctx, s, Default(), 0, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reads != 0 || out.Len() != 0 {
		t.Fatalf("read %d samples after cancel", reads)
	}

	s.read = func(time.Duration) ([]float64, error) {
		return nil, max3010x.ErrTimeout
	}
	if err := stream(context.Background(), s, Default(), 0, &out); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSampleRate(t *testing.T) {
	tests := []struct {
		s    SamplingConfig
		want physic.Frequency
	}{
		{SamplingConfig{}, 50 * physic.Hertz},
		{SamplingConfig{Rate: 400}, 400 * physic.Hertz},
		{SamplingConfig{Rate: 400, Averaging: 4}, 100 * physic.Hertz},
	}
	for _, tt := range tests {
		if got := sampleRate(tt.s); got != tt.want {
			t.Errorf("%+v: got %v, want %v", tt.s, got, tt.want)
		}
	}
}
