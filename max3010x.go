// Package max3010x implements the register protocol shared by the MAX3010x
// family of pulse oximetry and heart-rate sensors: interrupt handling, die
// temperature, FIFO streaming and the multi-LED mode and slot state.
//
// The concrete chips live in the max30100, max30101, max30102 and max30105
// packages. Each one binds a Variant and its sample decoding to the generic
// Device defined here.
//
// Every operation returns an error. Where the chips' reference drivers
// reported failures through sentinel values, those values are returned
// alongside the error: NaN for temperatures, an invalid Sample for FIFO reads,
// 0 for Available, false for interrupt flags and 0xFF for identifiers.
package max3010x

import (
	"errors"
	"fmt"
	"math"

	"periph.io/x/periph/conn/physic"
)

var (
	// ErrWrongPart is returned by Reset when the part ID register does not
	// match the variant, which usually means a wrong address or wiring.
	ErrWrongPart = errors.New("part ID does not match")
	// ErrTimeout is returned when a polled register did not reach the
	// expected state in time.
	ErrTimeout = errors.New("timed out")
	// ErrInvalidInterrupt is returned for interrupts the variant does not
	// have or cannot mask.
	ErrInvalidInterrupt = errors.New("interrupt not available")
	// ErrOutOfRange is returned when a value does not fit in its bit field.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidMode is returned for modes the device does not support.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidSlots is returned for multi-LED configurations with unknown
	// slot codes or gaps between enabled slots.
	ErrInvalidSlots = errors.New("invalid slot configuration")
	// ErrNoActiveSlots is returned when reading samples before a mode with
	// at least one active slot was set.
	ErrNoActiveSlots = errors.New("no active slots")
)

// Chip is the behavior a concrete variant adds to the generic Device.
type Chip[S any] interface {
	// DecodeSample decodes slots big-endian slot values from raw FIFO data
	// into a valid sample.
	DecodeSample(data []byte, slots int) S
	// DefaultConfiguration brings the chip to its power-on working state
	// at the end of Reset.
	DefaultConfiguration() error
}

// Device is the transaction engine of one sensor, generic over the sample
// shape S of its variant. It is not safe for concurrent use.
type Device[S any] struct {
	conn  *Conn
	v     *Variant
	chip  Chip[S]
	slots int
}

// NewDevice returns a device speaking to the sensor described by v. It does
// not touch the bus; call Reset before use.
func NewDevice[S any](bus Bus, v *Variant, chip Chip[S], opts ...Option) *Device[S] {
	return &Device[S]{
		conn:  newConn(bus, opts...),
		v:     v,
		chip:  chip,
		slots: v.MaxSlots,
	}
}

// Conn returns the register connection of the device, for variant specific
// registers.
func (d *Device[S]) Conn() *Conn {
	return d.conn
}

// Variant returns the register map of the device.
func (d *Device[S]) Variant() *Variant {
	return d.v
}

// ActiveSlots returns the number of slots each FIFO sample carries.
func (d *Device[S]) ActiveSlots() int {
	return d.slots
}

// Reset resets the device. All configurations, thresholds, and data registers
// are reset to their power-on state, the part ID is verified, the temperature
// interrupt is enabled and the variant default configuration is applied.
// On failure the device is in an unknown state and Reset should be retried.
func (d *Device[S]) Reset() error {
	v := d.v
	if err := d.conn.SetBit(v.ModeReg, v.ResetBit, true); err != nil {
		return fmt.Errorf("max3010x: could not reset: %w", err)
	}
	if err := d.conn.WaitBit(v.ModeReg, v.ResetBit, false, DefaultTimeout); err != nil {
		return fmt.Errorf("max3010x: could not reset: %w", err)
	}

	part, err := d.ReadPartID()
	if err != nil {
		return err
	}
	if part != v.PartID {
		return fmt.Errorf("max3010x: %s expects part ID %#02x, got %#02x: %w", v.Name, v.PartID, part, ErrWrongPart)
	}

	// ReadTemperature waits for this interrupt.
	if err := d.EnableInterrupt(v.TempReady); err != nil {
		return err
	}

	if err := d.chip.DefaultConfiguration(); err != nil {
		return fmt.Errorf("max3010x: could not configure %s: %w", v.Name, err)
	}
	d.conn.log.Printf("max3010x: %s at %#02x reset", v.Name, d.conn.addr)

	return nil
}

// ReadPartID returns the part ID of the device, or 0xFF on failure.
func (d *Device[S]) ReadPartID() (byte, error) {
	part, err := d.conn.Read(RegPartID)
	if err != nil {
		return 0xFF, fmt.Errorf("max3010x: could not get part ID: %w", err)
	}
	return part, nil
}

// ReadRevisionID returns the revision ID of the device, or 0xFF on failure.
func (d *Device[S]) ReadRevisionID() (byte, error) {
	rev, err := d.conn.Read(RegRevID)
	if err != nil {
		return 0xFF, fmt.Errorf("max3010x: could not get revision ID: %w", err)
	}
	return rev, nil
}

// Shutdown sets the device into power-save mode.
func (d *Device[S]) Shutdown() error {
	if err := d.conn.SetBit(d.v.ModeReg, d.v.ShutdownBit, true); err != nil {
		return fmt.Errorf("max3010x: could not shut down: %w", err)
	}
	return nil
}

// WakeUp wakes the device from power-save mode.
func (d *Device[S]) WakeUp() error {
	if err := d.conn.SetBit(d.v.ModeReg, d.v.ShutdownBit, false); err != nil {
		return fmt.Errorf("max3010x: could not wake up: %w", err)
	}
	return nil
}

const modeMask = 0b111

// WriteMode replaces the mode bits of the mode register and clears the FIFO,
// so buffered samples never outlive a mode change.
func (d *Device[S]) WriteMode(mode byte) error {
	if mode&^modeMask != 0 {
		return fmt.Errorf("max3010x: mode %#b: %w", mode, ErrInvalidMode)
	}
	if _, err := d.conn.SetField(d.v.ModeReg, 0, modeMask, mode); err != nil {
		return fmt.Errorf("max3010x: could not configure mode: %w", err)
	}

	return d.ClearFIFO()
}

// ReadTemperature triggers a die temperature conversion and returns the
// result in °C. It returns NaN on failure. The conversion is signalled
// through the temperature ready interrupt, which Reset enables; disabling it
// breaks this method.
func (d *Device[S]) ReadTemperature() (float64, error) {
	v := d.v
	if err := d.conn.SetBit(v.TempConfigReg, v.TempConfigBit, true); err != nil {
		return math.NaN(), fmt.Errorf("max3010x: could not start temperature conversion: %w", err)
	}
	if err := d.WaitForInterrupt(v.TempReady, DefaultTimeout); err != nil {
		return math.NaN(), err
	}

	i, err := d.conn.Read(v.TempIntReg)
	if err != nil {
		return math.NaN(), fmt.Errorf("max3010x: could not read integer part of temperature: %w", err)
	}
	f, err := d.conn.Read(v.TempFracReg)
	if err != nil {
		return math.NaN(), fmt.Errorf("max3010x: could not read fractional part of temperature: %w", err)
	}

	return float64(int8(i)) + float64(f)*0.0625, nil
}

// DieTemperature is ReadTemperature as a physic.Temperature.
func (d *Device[S]) DieTemperature() (physic.Temperature, error) {
	c, err := d.ReadTemperature()
	if err != nil {
		return 0, err
	}
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Kelvin)), nil
}
