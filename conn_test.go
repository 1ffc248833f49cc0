package max3010x

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/cgxeiji/max3010x/v2/internal/regtest"
)

func TestSetBitReadFailure(t *testing.T) {
	bus := regtest.New(Addr, 0x15, nil)
	bus.FailRead = func(*regtest.Bus, byte, int) error { return regtest.ErrNACK }
	c := newConn(bus)

	if err := c.SetBit(0x02, 3, true); !errors.Is(err, regtest.ErrNACK) {
		t.Fatalf("got %v, want NACK", err)
	}
	if len(bus.Writes(0x02)) != 0 {
		t.Fatal("register written after a failed read")
	}
	if err := c.SetBit(0x02, 8, true); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

func TestWaitBit(t *testing.T) {
	bus := regtest.New(Addr, 0x15, nil)
	reads := 0
	bus.FailRead = func(b *regtest.Bus, reg byte, _ int) error {
		reads++
		if reads == 4 {
			b.Regs[reg] |= 1 << 2
		}
		return nil
	}
	clk := &regtest.Clock{T: time.Unix(0, 0)}
	c := newConn(bus, WithClock(clk))

	if err := c.WaitBit(0x01, 2, true, 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clk.Sleeps != 3 {
		t.Fatalf("got %d polls, want 3", clk.Sleeps)
	}

	if err := c.WaitBit(0x01, 2, false, 10*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}

	bus.FailRead = func(*regtest.Bus, byte, int) error { return regtest.ErrNACK }
	clk.Sleeps = 0
	if err := c.WaitBit(0x01, 2, true, time.Second); !errors.Is(err, regtest.ErrNACK) {
		t.Fatalf("got %v, want NACK", err)
	}
	if clk.Sleeps != 0 {
		t.Fatal("kept polling after a read failure")
	}
}

func TestSetField(t *testing.T) {
	bus := regtest.New(Addr, 0x15, nil)
	bus.Regs[0x0A] = 0b1110_0011
	c := newConn(bus)

	old, err := c.SetField(0x0A, 2, 0b111, 0b101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if old != 0 {
		t.Fatalf("got old value %d, want 0", old)
	}
	if bus.Regs[0x0A] != 0b1111_0111 {
		t.Fatalf("got %#b, want 0b11110111", bus.Regs[0x0A])
	}

	bus.Clear()
	if _, err := c.SetField(0x0A, 2, 0b111, 0b1000); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	if len(bus.Ops) != 0 {
		t.Fatalf("bus touched: %v", bus.Ops)
	}
}

func TestOptions(t *testing.T) {
	bus := regtest.New(0x3C, 0x15, nil)
	var buf bytes.Buffer
	c := newConn(bus, OnAddr(0x3C), WithLogger(log.New(&buf, "", 0)))

	if c.Addr() != 0x3C {
		t.Fatalf("got %#x, want 0x3c", c.Addr())
	}
	if _, err := c.Read(RegPartID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restore := OnAddr(0x10)(c)
	if c.Addr() != 0x10 {
		t.Fatalf("got %#x, want 0x10", c.Addr())
	}
	if _, err := c.Read(RegPartID); !errors.Is(err, regtest.ErrNACK) {
		t.Fatalf("got %v, want NACK", err)
	}
	restore(c)
	if c.Addr() != 0x3C {
		t.Fatalf("got %#x, want 0x3c", c.Addr())
	}

	c.log.Printf("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("logger not used: %q", buf.String())
	}
}
