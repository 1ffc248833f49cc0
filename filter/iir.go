package filter

import (
	"math"

	"periph.io/x/periph/conn/physic"
)

// samples returns the RC time constant, in samples, of a cutoff frequency.
func samples(cutoff, rate physic.Frequency) float64 {
	return float64(rate) / (float64(cutoff) * 2 * math.Pi)
}

// HighPass is a single pole IIR high pass filter. It removes the DC part of
// a signal, such as the ambient level of a PPG reading.
type HighPass struct {
	a0, a1, b1 float64

	lastOut, lastIn float64
	primed          bool
}

// NewHighPass returns a high pass filter decaying to 36.8% after the given
// number of samples.
func NewHighPass(n float64) *HighPass {
	x := math.Exp(-1 / n)
	a0 := (1 + x) / 2
	return &HighPass{a0: a0, a1: -a0, b1: x}
}

// HighPassCutoff returns a high pass filter with a cutoff frequency for a
// signal sampled at rate.
func HighPassCutoff(cutoff, rate physic.Frequency) *HighPass {
	return NewHighPass(samples(cutoff, rate))
}

// Process implements Filter. The first value after a reset outputs 0.
func (f *HighPass) Process(v float64) float64 {
	if !f.primed {
		f.lastOut = 0
		f.primed = true
	} else {
		f.lastOut = f.a0*v + f.a1*f.lastIn + f.b1*f.lastOut
	}
	f.lastIn = v

	return f.lastOut
}

// Reset implements Filter.
func (f *HighPass) Reset() {
	f.primed = false
}

// LowPass is a single pole IIR low pass filter.
type LowPass struct {
	a0, b1 float64

	last   float64
	primed bool
}

// NewLowPass returns a low pass filter decaying to 36.8% after the given
// number of samples.
func NewLowPass(n float64) *LowPass {
	x := math.Exp(-1 / n)
	return &LowPass{a0: 1 - x, b1: x}
}

// LowPassCutoff returns a low pass filter with a cutoff frequency for a
// signal sampled at rate.
func LowPassCutoff(cutoff, rate physic.Frequency) *LowPass {
	return NewLowPass(samples(cutoff, rate))
}

// Process implements Filter. The first value after a reset passes through.
func (f *LowPass) Process(v float64) float64 {
	if !f.primed {
		f.last = v
		f.primed = true
	} else {
		f.last = f.a0*v + f.b1*f.last
	}

	return f.last
}

// Reset implements Filter.
func (f *LowPass) Reset() {
	f.primed = false
}

// Differentiator returns the rate of change of a signal per second.
type Differentiator struct {
	hz   float64
	last float64
}

// NewDifferentiator returns a differentiator for a signal sampled at rate.
func NewDifferentiator(rate physic.Frequency) *Differentiator {
	return &Differentiator{
		hz:   float64(rate) / float64(physic.Hertz),
		last: math.NaN(),
	}
}

// Process implements Filter. It returns NaN for the first value after a
// reset.
func (d *Differentiator) Process(v float64) float64 {
	diff := (v - d.last) * d.hz
	d.last = v
	return diff
}

// Reset implements Filter.
func (d *Differentiator) Reset() {
	d.last = math.NaN()
}
