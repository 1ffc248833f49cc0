// Package filter provides per-sample transforms for the raw readings of a
// MAX3010x sensor: IIR high and low pass filters, a differentiator, moving
// averages, a FIR low pass filter and running statistics.
//
// Filters keep state between samples and are not safe for concurrent use.
package filter

// Filter transforms a stream of values one sample at a time.
type Filter interface {
	// Process feeds a value and returns the filtered value.
	Process(v float64) float64
	// Reset forgets every value seen so far.
	Reset()
}

// Chain applies filters in order, feeding each one the output of the
// previous.
type Chain []Filter

// Process implements Filter.
func (c Chain) Process(v float64) float64 {
	for _, f := range c {
		v = f.Process(v)
	}
	return v
}

// Reset implements Filter.
func (c Chain) Reset() {
	for _, f := range c {
		f.Reset()
	}
}
