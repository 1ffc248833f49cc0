package filter

// Half of the symmetric 23 tap impulse response, center tap last.
var firC = []float64{21.5, 40.125, 72.375, 115.875, 170.0, 232.25, 298.75, 364.5, 423.875, 471.0, 501.5, 512.0}

const firSize = 32

// FIRGain is the DC gain of the FIR filter.
const FIRGain = 5935.5

// FIR is a 23 tap low pass FIR filter for AC signals around 0. Its output is
// scaled by FIRGain and delayed by 11 samples.
type FIR struct {
	buffer [firSize]float64
	idx    int
}

// Process implements Filter.
func (f *FIR) Process(v float64) float64 {
	f.buffer[f.idx] = v

	z := firC[11] * f.buffer[(f.idx-11)&(firSize-1)]
	for i := 0; i < 11; i++ {
		z += firC[i] * (f.buffer[(f.idx-i)&(firSize-1)] + f.buffer[(f.idx-(firSize-10)+i)&(firSize-1)])
	}

	f.idx++
	f.idx %= firSize

	return z
}

// Reset implements Filter.
func (f *FIR) Reset() {
	*f = FIR{}
}
