package bus

import (
	"errors"
	"fmt"

	"github.com/kidoman/embd"
	goi2c "github.com/swdee/go-i2c"
)

// ErrAddr is returned when a transaction targets another address than the
// one a bus was opened for.
var ErrAddr = errors.New("bus: address not opened")

// GoI2C is a go-i2c device file bound to the sensor address. Reads are sent
// as a register write followed by a separate read, without a repeated start,
// which the sensors accept.
type GoI2C struct {
	Dev *goi2c.Options
}

// OpenGoI2C opens a device file such as /dev/i2c-1 for the sensor at addr.
func OpenGoI2C(dev string, addr uint8) (*GoI2C, error) {
	d, err := goi2c.New(addr, dev)
	if err != nil {
		return nil, fmt.Errorf("bus: could not open %s: %w", dev, err)
	}

	return &GoI2C{Dev: d}, nil
}

// Tx implements max3010x.Bus.
func (g *GoI2C) Tx(addr uint16, w, r []byte) error {
	if addr != uint16(g.Dev.GetAddr()) {
		return fmt.Errorf("%#02x: %w", addr, ErrAddr)
	}
	if _, err := g.Dev.WriteBytes(w); err != nil {
		return err
	}
	if len(r) == 0 {
		return nil
	}
	n, err := g.Dev.ReadBytes(r)
	if err != nil {
		return err
	}
	if n != len(r) {
		return fmt.Errorf("bus: short read of %d bytes, want %d", n, len(r))
	}

	return nil
}

// Close closes the device file.
func (g *GoI2C) Close() error {
	return g.Dev.Close()
}

// Embd is an embd I²C bus. Transactions must start with a register address.
type Embd struct {
	Bus embd.I2CBus
}

// OpenEmbd opens I²C bus l of the embd host, which the caller registers by
// importing a host package such as github.com/kidoman/embd/host/all.
func OpenEmbd(l byte) (*Embd, error) {
	if err := embd.InitI2C(); err != nil {
		return nil, fmt.Errorf("bus: could not initialize embd: %w", err)
	}

	return &Embd{Bus: embd.NewI2CBus(l)}, nil
}

// Tx implements max3010x.Bus.
func (e *Embd) Tx(addr uint16, w, r []byte) error {
	if len(w) == 0 {
		return errors.New("bus: no register address")
	}
	if addr > 0x7F {
		return fmt.Errorf("%#02x: %w", addr, ErrAddr)
	}
	if len(r) > 0 {
		return e.Bus.ReadFromReg(byte(addr), w[0], r)
	}

	return e.Bus.WriteToReg(byte(addr), w[0], w[1:])
}

// Close closes the bus and releases the embd I²C driver.
func (e *Embd) Close() error {
	if err := e.Bus.Close(); err != nil {
		return err
	}
	return embd.CloseI2C()
}
