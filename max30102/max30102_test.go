package max30102

import (
	"errors"
	"testing"
	"time"

	"github.com/cgxeiji/max3010x/v2"
	"github.com/cgxeiji/max3010x/v2/internal/regtest"
)

func newBus(part byte) *regtest.Bus {
	return regtest.New(Addr, part, &regtest.Sim{
		ModeReg:       ModeCfg,
		ResetBit:      6,
		TempConfigReg: TempCfg,
		TempConfigBit: 0,
		TempStatusReg: IntStat2,
		TempStatusBit: 1,
		TempIntReg:    TempInt,
		TempFracReg:   TempFrac,
		TempInt:       25,
		TempFrac:      4,
	})
}

func TestNew(t *testing.T) {
	bus := newBus(PartID)
	d, err := New(bus, max3010x.WithClock(&regtest.Clock{T: time.Unix(0, 0)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[byte]byte{
		ModeCfg:          0x03,
		SpO2Cfg:          0x63,
		FIFOCfg:          0x10,
		Led1PA:           90,
		Led2PA:           80,
		MultiLedModeS2S1: 0,
		MultiLedModeS4S3: 0,
		IntEna2:          0x02,
		FIFOWrPtr:        0,
		FIFORdPtr:        0,
	}
	for reg, v := range want {
		if bus.Regs[reg] != v {
			t.Errorf("register %#02x: got %#x, want %#x", reg, bus.Regs[reg], v)
		}
	}
	if d.Mode() != max3010x.ModeSpO2 || d.ActiveSlots() != 2 {
		t.Fatalf("got mode %v with %d slots", d.Mode(), d.ActiveSlots())
	}

	temp, err := d.ReadTemperature()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 25.25 {
		t.Fatalf("got %v, want 25.25", temp)
	}
}

func TestNewWrongPart(t *testing.T) {
	d, err := New(newBus(0x11))
	if !errors.Is(err, max3010x.ErrWrongPart) {
		t.Fatalf("got %v, want ErrWrongPart", err)
	}
	if d != nil {
		t.Fatal("got a device for the wrong part")
	}
}

func TestSlots(t *testing.T) {
	bus := newBus(PartID)
	d, err := New(bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the green code of the other variants is reserved here
	err = d.SetMultiLedConfiguration([4]max3010x.Slot{SlotRed, SlotIR, 3, SlotOff})
	if !errors.Is(err, max3010x.ErrInvalidSlots) {
		t.Fatalf("got %v, want ErrInvalidSlots", err)
	}

	if err := d.SetMultiLedConfiguration([4]max3010x.Slot{SlotIR, SlotRed, SlotIR, SlotOff}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.SetMode(max3010x.ModeMultiLed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bus.Regs[MultiLedModeS2S1] != 0x12 || bus.Regs[MultiLedModeS4S3] != 0x02 {
		t.Fatalf("got %#x %#x, want 0x12 0x02", bus.Regs[MultiLedModeS2S1], bus.Regs[MultiLedModeS4S3])
	}

	bus.Regs[FIFOWrPtr] = 1
	bus.Queues[FIFOData] = []byte{0, 0, 1, 0, 0, 2, 0, 0, 3}
	s, err := d.ReadSample(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Slot != [4]uint32{1, 2, 3, 0} {
		t.Fatalf("got %v", s.Slot)
	}
}

func TestSetPulseAmp(t *testing.T) {
	bus := newBus(PartID)
	d, err := New(bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.SetPulseAmp(LEDIR, 6.4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bus.Regs[Led2PA] != 32 {
		t.Fatalf("got %d, want 32", bus.Regs[Led2PA])
	}
	if err := d.SetLedCurrent(LED(2), 1); !errors.Is(err, max3010x.ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

func TestInterrupts(t *testing.T) {
	bus := newBus(PartID)
	d, err := New(bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []max3010x.Interrupt{AlmostFull, NewFIFOData, AmbientLightCancelOvf} {
		if err := d.EnableInterrupt(id); err != nil {
			t.Fatalf("%d: unexpected error: %v", id, err)
		}
	}
	if bus.Regs[IntEna1] != 0xE0 {
		t.Fatalf("got %#b, want 0b11100000", bus.Regs[IntEna1])
	}
	if err := d.EnableInterrupt(PowerReady); !errors.Is(err, max3010x.ErrInvalidInterrupt) {
		t.Fatalf("got %v, want ErrInvalidInterrupt", err)
	}

	bus.Regs[IntStat1] = 0x01
	if set, err := d.CheckInterruptFlag(PowerReady); err != nil || !set {
		t.Fatalf("got %v, %v, want true", set, err)
	}
}
