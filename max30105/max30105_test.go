package max30105

import (
	"errors"
	"testing"

	"github.com/cgxeiji/max3010x/v2"
	"github.com/cgxeiji/max3010x/v2/internal/regtest"
)

func newBus() *regtest.Bus {
	return regtest.New(max3010x.Addr, PartID, &regtest.Sim{
		ModeReg:       0x09,
		ResetBit:      6,
		TempConfigReg: 0x21,
		TempConfigBit: 0,
		TempStatusReg: 0x01,
		TempStatusBit: 1,
		TempIntReg:    0x1F,
		TempFracReg:   0x20,
	})
}

func TestNew(t *testing.T) {
	bus := newBus()
	bus.Regs[RegPilotPA] = 0x7F
	d, err := New(bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for reg, v := range map[byte]byte{
		RegLed1PA:  90,
		RegLed2PA:  80,
		RegLed3PA:  100,
		RegPilotPA: 0,
		0x0A:       0x63,
		0x08:       0x10,
		0x09:       0x03,
	} {
		if bus.Regs[reg] != v {
			t.Errorf("register %#02x: got %#x, want %#x", reg, bus.Regs[reg], v)
		}
	}
	if d.ActiveSlots() != 2 {
		t.Fatalf("got %d active slots, want 2", d.ActiveSlots())
	}
}

func TestPilotSlots(t *testing.T) {
	tests := []struct {
		name   string
		slots  [4]max3010x.Slot
		active int
		err    error
	}{
		{name: "pilot", slots: [4]max3010x.Slot{SlotRed, SlotPilotIR, SlotPilotGreen, SlotPilotRed}, active: 4},
		{name: "pilot off", slots: [4]max3010x.Slot{SlotGreen, SlotPilotOff, SlotOff, SlotOff}, active: 1},
		{name: "gap after pilot off", slots: [4]max3010x.Slot{SlotPilotOff, SlotRed, SlotOff, SlotOff}, err: max3010x.ErrInvalidSlots},
		{name: "unknown", slots: [4]max3010x.Slot{8, SlotOff, SlotOff, SlotOff}, err: max3010x.ErrInvalidSlots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(newBus())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = d.SetMultiLedConfiguration(tt.slots)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.ConfiguredSlots() != tt.active {
				t.Fatalf("got %d configured slots, want %d", d.ConfiguredSlots(), tt.active)
			}
		})
	}
}

func TestProximity(t *testing.T) {
	bus := newBus()
	d, err := New(bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := d.SetProximityLedCurrent(max3010x.Current(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.SetProximityThreshold(0x40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.EnableInterrupt(ProximityReady); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bus.Regs[RegPilotPA] != 25 || bus.Regs[RegProxIntThresh] != 0x40 || bus.Regs[0x02] != 0x10 {
		t.Fatalf("got pilot %d, threshold %#x, enable %#b", bus.Regs[RegPilotPA], bus.Regs[RegProxIntThresh], bus.Regs[0x02])
	}

	bus.FailWrite = func(*regtest.Bus, byte, []byte) error { return regtest.ErrNACK }
	if err := d.SetProximityThreshold(1); !errors.Is(err, regtest.ErrNACK) {
		t.Fatalf("got %v, want NACK", err)
	}
}
