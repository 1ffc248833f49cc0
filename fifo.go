package max3010x

import (
	"fmt"
	"time"
)

// fifoRegs holds the FIFO pointers, read together in register order.
type fifoRegs struct {
	write    byte
	overflow byte
	read     byte
}

func (d *Device[S]) fifoRegs() (fifoRegs, error) {
	b, err := d.conn.ReadBytes(d.v.fifoWritePtr(), 3)
	if err != nil {
		return fifoRegs{}, fmt.Errorf("max3010x: could not read FIFO pointers: %w", err)
	}

	return fifoRegs{write: b[0], overflow: b[1], read: b[2]}, nil
}

// available returns the number of unread samples in a FIFO of the given size.
// Equal pointers mean empty unless samples were lost, in which case the FIFO
// is full.
func (f fifoRegs) available(size int) int {
	w := int(f.write) % size
	r := int(f.read) % size
	if w == r && f.overflow != 0 {
		return size
	}

	return (size + w - r) % size
}

// Available returns the number of unread samples in the FIFO, or 0 on
// failure.
func (d *Device[S]) Available() (int, error) {
	f, err := d.fifoRegs()
	if err != nil {
		return 0, err
	}

	return f.available(d.v.FIFOSize), nil
}

// ReadOverflowCounter returns the number of samples lost to a full FIFO, or
// 0xFF on failure.
func (d *Device[S]) ReadOverflowCounter() (byte, error) {
	n, err := d.conn.Read(d.v.fifoOverflow())
	if err != nil {
		return 0xFF, fmt.Errorf("max3010x: could not read overflow counter: %w", err)
	}
	return n, nil
}

// ClearFIFO resets the write pointer, read pointer and overflow counter, in
// that order, discarding every buffered sample.
func (d *Device[S]) ClearFIFO() error {
	for _, reg := range []byte{d.v.fifoWritePtr(), d.v.fifoReadPtr(), d.v.fifoOverflow()} {
		if err := d.conn.Write(reg, 0); err != nil {
			return fmt.Errorf("max3010x: could not clear FIFO: %w", err)
		}
	}
	d.conn.log.Printf("max3010x: %s FIFO cleared", d.v.Name)

	return nil
}

// ReadSample waits for the FIFO to hold a sample and reads it. A timeout of
// 0 waits forever. On timeout or failure it returns the zero (invalid)
// sample.
//
// When fetching the sample data fails, the read pointer is written back to
// the value seen before the fetch, so a retry reads the same sample instead
// of skipping the part a broken transfer may have consumed.
func (d *Device[S]) ReadSample(timeout time.Duration) (S, error) {
	var invalid S
	if d.slots == 0 {
		return invalid, fmt.Errorf("max3010x: could not read sample: %w", ErrNoActiveSlots)
	}

	start := d.conn.clock.Now()
	var f fifoRegs
	for {
		var err error
		if f, err = d.fifoRegs(); err != nil {
			return invalid, err
		}
		if f.overflow != 0 || f.write != f.read {
			break
		}
		if timeout > 0 && d.conn.clock.Now().Sub(start) >= timeout {
			return invalid, fmt.Errorf("max3010x: no sample after %v: %w", timeout, ErrTimeout)
		}
		d.conn.clock.Sleep(pollInterval)
	}

	data, err := d.conn.ReadBytes(d.v.fifoData(), d.v.SampleWidth*d.slots)
	if err != nil {
		if rerr := d.conn.Write(d.v.fifoReadPtr(), f.read); rerr != nil {
			d.conn.log.Printf("max3010x: could not restore FIFO read pointer: %v", rerr)
		} else {
			d.conn.log.Printf("max3010x: FIFO read pointer restored to %d", f.read)
		}
		return invalid, fmt.Errorf("max3010x: could not read sample: %w", err)
	}

	return d.chip.DecodeSample(data, d.slots), nil
}

// ReadBatch reads every sample available in the FIFO, waiting up to timeout
// for the first one when it is empty. The samples read before a failure are
// returned with the error.
func (d *Device[S]) ReadBatch(timeout time.Duration) ([]S, error) {
	n, err := d.Available()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = 1
	}

	samples := make([]S, 0, n)
	for i := 0; i < n; i++ {
		s, err := d.ReadSample(timeout)
		if err != nil {
			return samples, err
		}
		samples = append(samples, s)
	}

	return samples, nil
}
