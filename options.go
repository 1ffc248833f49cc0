package max3010x

import (
	"io"
	"log"
	"time"
)

// An Option configures the connection of a device. Applying an option
// returns an option restoring the previous value.
type Option func(c *Conn) Option

// OnAddr can be used to specify an alternative I²C address.
// By default, the address is 0x57.
func OnAddr(addr uint16) Option {
	return func(c *Conn) Option {
		old := c.addr
		c.addr = addr
		return OnAddr(old)
	}
}

// WithLogger sets the logger used to trace resets, mode changes and FIFO
// recovery. A nil logger discards everything, which is the default.
func WithLogger(l *log.Logger) Option {
	return func(c *Conn) Option {
		old := c.log
		if l == nil {
			l = log.New(io.Discard, "", log.LstdFlags)
		}
		c.log = l
		return WithLogger(old)
	}
}

// WithClock replaces the clock used for polling and timeouts.
func WithClock(clk Clock) Option {
	return func(c *Conn) Option {
		old := c.clock
		if clk == nil {
			clk = realClock{}
		}
		c.clock = clk
		return WithClock(old)
	}
}

// Clock is the time source of polling loops. Now must be monotonic.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
