package max3010x

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Bus is the transport a sensor is reached through. It performs a single
// addressed transaction: w is sent first and, when r is not empty, len(r)
// bytes are read back. Both periph's i2c.Bus and tinygo's drivers.I2C satisfy
// it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// Addr is the default I²C address shared by the whole family.
const Addr = 0x57

// DefaultTimeout bounds the register polls that have no caller supplied
// timeout (reset completion, temperature conversion).
const DefaultTimeout = 100 * time.Millisecond

const pollInterval = time.Millisecond

// Conn is an addressed register connection to one sensor. None of its
// multi-step operations are transactional: a failure after a successful write
// leaves that write in place.
type Conn struct {
	bus   Bus
	addr  uint16
	clock Clock
	log   *log.Logger
}

func newConn(bus Bus, opts ...Option) *Conn {
	c := &Conn{
		bus:   bus,
		addr:  Addr,
		clock: realClock{},
		log:   log.New(io.Discard, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Addr returns the bus address of the sensor.
func (c *Conn) Addr() uint16 {
	return c.addr
}

// ReadBytes reads n consecutive bytes starting at register reg.
func (c *Conn) ReadBytes(reg byte, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := c.bus.Tx(c.addr, []byte{reg}, b); err != nil {
		return nil, fmt.Errorf("could not read %d bytes from %#02x: %w", n, reg, err)
	}

	return b, nil
}

// Read reads a single byte from a register.
func (c *Conn) Read(reg byte) (byte, error) {
	b, err := c.ReadBytes(reg, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// WriteBytes writes data to consecutive registers starting at reg.
func (c *Conn) WriteBytes(reg byte, data ...byte) error {
	w := make([]byte, 0, len(data)+1)
	w = append(w, reg)
	w = append(w, data...)
	if err := c.bus.Tx(c.addr, w, nil); err != nil {
		return fmt.Errorf("could not write %d bytes to %#02x: %w", len(data), reg, err)
	}

	return nil
}

// Write writes a byte to a register.
func (c *Conn) Write(reg, data byte) error {
	return c.WriteBytes(reg, data)
}

// ReadBit reports the state of one bit of a register.
func (c *Conn) ReadBit(reg, bit byte) (bool, error) {
	if bit > 7 {
		return false, fmt.Errorf("bit %d of %#02x: %w", bit, reg, ErrOutOfRange)
	}
	b, err := c.Read(reg)
	if err != nil {
		return false, err
	}

	return (b>>bit)&1 == 1, nil
}

// SetBit sets or clears one bit of a register with a read-modify-write. The
// register is left untouched when the read fails.
func (c *Conn) SetBit(reg, bit byte, value bool) error {
	if bit > 7 {
		return fmt.Errorf("bit %d of %#02x: %w", bit, reg, ErrOutOfRange)
	}
	b, err := c.Read(reg)
	if err != nil {
		return err
	}

	b &^= 1 << bit
	if value {
		b |= 1 << bit
	}

	return c.Write(reg, b)
}

// WaitBit polls a bit every millisecond until it equals expected. It fails on
// the first read error or once timeout has elapsed; the elapsed time is
// checked once per poll, so it may overrun by one interval.
func (c *Conn) WaitBit(reg, bit byte, expected bool, timeout time.Duration) error {
	start := c.clock.Now()
	for {
		v, err := c.ReadBit(reg, bit)
		if err != nil {
			return fmt.Errorf("could not wait for bit %d of %#02x: %w", bit, reg, err)
		}
		if v == expected {
			return nil
		}
		if c.clock.Now().Sub(start) > timeout {
			return fmt.Errorf("bit %d of %#02x still %v after %v: %w", bit, reg, !expected, timeout, ErrTimeout)
		}
		c.clock.Sleep(pollInterval)
	}
}

// Field returns the value of the bit field mask<<shift of reg.
func (c *Conn) Field(reg, shift, mask byte) (byte, error) {
	b, err := c.Read(reg)
	if err != nil {
		return 0, err
	}

	return (b >> shift) & mask, nil
}

// SetField replaces the bit field mask<<shift of reg with value and returns
// the previous value of the field. A value wider than mask is rejected
// before the bus is touched.
func (c *Conn) SetField(reg, shift, mask, value byte) (byte, error) {
	if value&^mask != 0 {
		return 0, fmt.Errorf("%#x does not fit in field %#b of %#02x: %w", value, mask<<shift, reg, ErrOutOfRange)
	}
	cfg, err := c.Read(reg)
	if err != nil {
		return 0, fmt.Errorf("could not get field %#b from %#02x: %w", mask<<shift, reg, err)
	}
	old := (cfg >> shift) & mask
	cfg &^= mask << shift
	cfg |= value << shift
	if err := c.Write(reg, cfg); err != nil {
		return 0, fmt.Errorf("could not set field %#b in %#02x: %w", mask<<shift, reg, err)
	}

	return old, nil
}
