package filter

// MovingAverage is the mean of the last N values.
type MovingAverage struct {
	values []float64
	idx    int
	count  int
}

// NewMovingAverage returns a moving average over n values.
func NewMovingAverage(n int) *MovingAverage {
	if n < 1 {
		n = 1
	}
	return &MovingAverage{values: make([]float64, n)}
}

// Process implements Filter. Until the window fills, it averages the values
// seen so far.
func (m *MovingAverage) Process(v float64) float64 {
	m.values[m.idx] = v
	m.idx = (m.idx + 1) % len(m.values)
	if m.count < len(m.values) {
		m.count++
	}

	var sum float64
	for _, x := range m.values[:m.count] {
		sum += x
	}

	return sum / float64(m.count)
}

// Reset implements Filter.
func (m *MovingAverage) Reset() {
	m.idx = 0
	m.count = 0
}

// Count returns the number of values in the window.
func (m *MovingAverage) Count() int {
	return m.count
}

// Estimate is a cheap estimate of the moving average of the last N values
// that needs no buffer. Each value moves the mean by 1/N of its distance.
type Estimate struct {
	N    float64
	Mean float64
}

// Process implements Filter. A zero N behaves like 4.
func (e *Estimate) Process(v float64) float64 {
	n := e.N
	if n == 0 {
		n = 4
	}
	e.Mean += (v - e.Mean) / n

	return e.Mean
}

// Reset implements Filter.
func (e *Estimate) Reset() {
	e.Mean = 0
}
