package max3010x

import (
	"fmt"
	"time"
)

// EnableInterrupt enables an interrupt source.
func (d *Device[S]) EnableInterrupt(id Interrupt) error {
	return d.setInterrupt(id, true)
}

// DisableInterrupt disables an interrupt source. Disabling the temperature
// ready interrupt breaks ReadTemperature.
func (d *Device[S]) DisableInterrupt(id Interrupt) error {
	return d.setInterrupt(id, false)
}

func (d *Device[S]) setInterrupt(id Interrupt, on bool) error {
	m, ok := d.v.interrupt(id)
	if !ok || !m.configurable() {
		return fmt.Errorf("max3010x: %s interrupt %d: %w", d.v.Name, id, ErrInvalidInterrupt)
	}
	if err := d.conn.SetBit(m.ConfigReg, m.ConfigBit, on); err != nil {
		return fmt.Errorf("max3010x: could not configure interrupt %d: %w", id, err)
	}

	return nil
}

// CheckInterruptFlag reports whether the status flag of an interrupt is set.
// Reading a status register clears its flags on the chip. Any failure reads
// as false; the error tells it apart from a clear flag.
func (d *Device[S]) CheckInterruptFlag(id Interrupt) (bool, error) {
	m, ok := d.v.interrupt(id)
	if !ok || !m.observable() {
		return false, fmt.Errorf("max3010x: %s interrupt %d: %w", d.v.Name, id, ErrInvalidInterrupt)
	}
	set, err := d.conn.ReadBit(m.StatusReg, m.StatusBit)
	if err != nil {
		return false, fmt.Errorf("max3010x: could not read interrupt %d: %w", id, err)
	}

	return set, nil
}

// WaitForInterrupt polls the status flag of an interrupt until it is set or
// timeout elapses.
func (d *Device[S]) WaitForInterrupt(id Interrupt, timeout time.Duration) error {
	m, ok := d.v.interrupt(id)
	if !ok || !m.observable() {
		return fmt.Errorf("max3010x: %s interrupt %d: %w", d.v.Name, id, ErrInvalidInterrupt)
	}
	if err := d.conn.WaitBit(m.StatusReg, m.StatusBit, true, timeout); err != nil {
		return fmt.Errorf("max3010x: could not wait for interrupt %d: %w", id, err)
	}

	return nil
}
