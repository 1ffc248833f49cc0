package filter

import "math"

// MinMaxAvg accumulates the minimum, maximum and average of every value
// since the last reset. The zero value is not ready for use; see
// NewMinMaxAvg.
type MinMaxAvg struct {
	min, max float64
	sum      float64
	count    int
}

// NewMinMaxAvg returns an empty statistic.
func NewMinMaxAvg() *MinMaxAvg {
	s := &MinMaxAvg{}
	s.Reset()
	return s
}

// Process implements Filter. It returns the value unchanged.
func (s *MinMaxAvg) Process(v float64) float64 {
	if math.IsNaN(s.min) || v < s.min {
		s.min = v
	}
	if math.IsNaN(s.max) || v > s.max {
		s.max = v
	}
	s.sum += v
	s.count++

	return v
}

// Reset implements Filter.
func (s *MinMaxAvg) Reset() {
	s.min = math.NaN()
	s.max = math.NaN()
	s.sum = 0
	s.count = 0
}

// Min returns the smallest value, or NaN when empty.
func (s *MinMaxAvg) Min() float64 { return s.min }

// Max returns the largest value, or NaN when empty.
func (s *MinMaxAvg) Max() float64 { return s.max }

// Avg returns the mean value, or NaN when empty.
func (s *MinMaxAvg) Avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// Count returns the number of values.
func (s *MinMaxAvg) Count() int { return s.count }

// Window keeps the last N values and their extremes.
type Window struct {
	buffer []float64
	idx    int
	count  int

	max float64
	min float64
}

// NewWindow returns a window over the last size values.
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{buffer: make([]float64, size)}
}

// Process implements Filter. It returns the value unchanged.
func (w *Window) Process(v float64) float64 {
	w.idx = (w.idx + 1) % len(w.buffer)
	old := w.buffer[w.idx]
	w.buffer[w.idx] = v
	if w.count < len(w.buffer) {
		w.count++
	}

	switch {
	case w.count == 1:
		w.min, w.max = v, v
	case w.count == len(w.buffer) && (old == w.max || old == w.min):
		w.rescan()
	default:
		w.max = math.Max(w.max, v)
		w.min = math.Min(w.min, v)
	}

	return v
}

func (w *Window) rescan() {
	w.min, w.max = w.buffer[0], w.buffer[0]
	for _, b := range w.buffer[1:] {
		w.max = math.Max(w.max, b)
		w.min = math.Min(w.min, b)
	}
}

// Reset implements Filter.
func (w *Window) Reset() {
	w.idx = 0
	w.count = 0
	w.min, w.max = 0, 0
}

// Last returns the newest value.
func (w *Window) Last() float64 {
	return w.buffer[w.idx]
}

// Min returns the smallest value in the window.
func (w *Window) Min() float64 { return w.min }

// Max returns the largest value in the window.
func (w *Window) Max() float64 { return w.max }

// Perfusion returns the peak to peak amplitude of the window relative to its
// minimum, the AC/DC ratio of a PPG signal. It returns 0 when the minimum is
// 0.
func (w *Window) Perfusion() float64 {
	if w.min == 0 {
		return 0
	}

	return (w.max - w.min) / w.min
}
