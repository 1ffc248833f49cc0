// Package regtest provides a register file standing in for a sensor on the
// bus, and a clock that only moves when slept.
package regtest

import (
	"errors"
	"fmt"
	"time"
)

// ErrNACK is the error returned for injected bus failures.
var ErrNACK = errors.New("regtest: NACK")

// Op is one recorded bus transaction.
type Op struct {
	Write bool
	Reg   byte
	Data  []byte
}

// Sim describes the self-acting bits of a chip: the reset bit clears itself
// and a temperature conversion completes as soon as it is triggered.
type Sim struct {
	ModeReg, ResetBit            byte
	TempConfigReg, TempConfigBit byte
	TempStatusReg, TempStatusBit byte
	TempIntReg, TempFracReg      byte
	TempInt, TempFrac            byte
}

// Bus is a register file behind one address. Registers auto-increment on
// block transfers, except those with a queue, which serve bytes from the
// queue like a FIFO data register.
type Bus struct {
	Addr uint16
	Regs [256]byte

	// Queues serves reads of a register from a byte queue.
	Queues map[byte][]byte

	// FailRead and FailWrite, when set, inject failures before the
	// transaction reaches the register file.
	FailRead  func(b *Bus, reg byte, n int) error
	FailWrite func(b *Bus, reg byte, data []byte) error

	// Sim enables the chip simulation when not nil.
	Sim *Sim

	Ops []Op
}

// New returns a bus with a device at addr whose part ID register holds part.
func New(addr uint16, part byte, sim *Sim) *Bus {
	b := &Bus{
		Addr:   addr,
		Queues: map[byte][]byte{},
		Sim:    sim,
	}
	b.Regs[0xFF] = part

	return b
}

// String implements fmt.Stringer.
func (b *Bus) String() string {
	return fmt.Sprintf("regtest(%#02x)", b.Addr)
}

// Tx implements the bus transaction.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr != b.Addr {
		return fmt.Errorf("regtest: no device at %#02x: %w", addr, ErrNACK)
	}
	if len(w) == 0 {
		return errors.New("regtest: no register address")
	}
	reg := w[0]

	if len(r) > 0 {
		b.Ops = append(b.Ops, Op{Reg: reg, Data: make([]byte, len(r))})
		if b.FailRead != nil {
			if err := b.FailRead(b, reg, len(r)); err != nil {
				return err
			}
		}
		if q, ok := b.Queues[reg]; ok {
			if len(q) < len(r) {
				return fmt.Errorf("regtest: short read of %#02x: %w", reg, ErrNACK)
			}
			copy(r, q)
			b.Queues[reg] = q[len(r):]
		} else {
			for i := range r {
				r[i] = b.Regs[byte(int(reg)+i)]
			}
		}
		copy(b.Ops[len(b.Ops)-1].Data, r)
		return nil
	}

	data := append([]byte(nil), w[1:]...)
	b.Ops = append(b.Ops, Op{Write: true, Reg: reg, Data: data})
	if b.FailWrite != nil {
		if err := b.FailWrite(b, reg, data); err != nil {
			return err
		}
	}
	for i, v := range data {
		b.Regs[byte(int(reg)+i)] = v
	}
	b.simulate(reg)

	return nil
}

func (b *Bus) simulate(reg byte) {
	s := b.Sim
	if s == nil {
		return
	}
	if reg == s.ModeReg {
		b.Regs[s.ModeReg] &^= 1 << s.ResetBit
	}
	if reg == s.TempConfigReg && b.Regs[reg]&(1<<s.TempConfigBit) != 0 {
		b.Regs[reg] &^= 1 << s.TempConfigBit
		b.Regs[s.TempStatusReg] |= 1 << s.TempStatusBit
		b.Regs[s.TempIntReg] = s.TempInt
		b.Regs[s.TempFracReg] = s.TempFrac
	}
}

// Writes returns the data of every write to reg, in order.
func (b *Bus) Writes(reg byte) [][]byte {
	var out [][]byte
	for _, op := range b.Ops {
		if op.Write && op.Reg == reg {
			out = append(out, op.Data)
		}
	}
	return out
}

// Clear forgets the recorded transactions.
func (b *Bus) Clear() {
	b.Ops = nil
}

// Clock is a fake clock that advances only when slept.
type Clock struct {
	T      time.Time
	Sleeps int
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	return c.T
}

// Sleep advances the fake time by d.
func (c *Clock) Sleep(d time.Duration) {
	c.T = c.T.Add(d)
	c.Sleeps++
}
