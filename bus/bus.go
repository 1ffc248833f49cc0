// Package bus adapts the I²C stacks a MAX3010x sensor can sit behind to the
// single transaction max3010x.Bus: periph on Linux hosts, TinyGo on
// microcontrollers, and the go-i2c and embd Linux libraries.
package bus

import (
	"fmt"
	"log"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
	"tinygo.org/x/drivers"

	"github.com/cgxeiji/max3010x/v2"
)

// Open initializes the host drivers and opens an I²C bus by name, or the
// first one available when name is empty. A speed of 0 keeps the bus
// default. The sensors run at up to 400kHz.
func Open(name string, speed physic.Frequency) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bus: could not initialize host: %w", err)
	}

	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bus: could not open %q: %w", name, err)
	}
	if speed > 0 {
		if err := b.SetSpeed(speed); err != nil {
			b.Close()
			return nil, fmt.Errorf("bus: could not set speed of %s to %s: %w", b, speed, err)
		}
	}

	return b, nil
}

// TinyGo returns a TinyGo I²C bus, such as machine.I2C0, as a sensor bus.
func TinyGo(b drivers.I2C) max3010x.Bus {
	return b
}

// Trace logs every transaction of a bus.
type Trace struct {
	Bus max3010x.Bus
	Log *log.Logger
}

// Tx implements max3010x.Bus.
func (t *Trace) Tx(addr uint16, w, r []byte) error {
	err := t.Bus.Tx(addr, w, r)
	switch {
	case err != nil:
		t.Log.Printf("i2c %#02x: w=%#x: %v", addr, w, err)
	case len(r) > 0:
		t.Log.Printf("i2c %#02x: w=%#x r=%#x", addr, w, r)
	default:
		t.Log.Printf("i2c %#02x: w=%#x", addr, w)
	}

	return err
}
