package filter

// Crossing detects positive zero crossings of an AC signal whose preceding
// swing, from trough to peak, lies within (MinSwing, MaxSwing). It is meant
// to follow a high pass or FIR filter that centers the signal on 0.
type Crossing struct {
	MinSwing, MaxSwing float64

	max, min float64
	prev     float64
	rising   bool
}

// Check feeds a value and reports whether it completed a crossing.
func (c *Crossing) Check(v float64) bool {
	hit := false

	if c.prev < 0 && v >= 0 {
		swing := c.max - c.min
		if swing > c.MinSwing && swing < c.MaxSwing {
			hit = true
		}
		c.rising = true
		c.max = 0
	}
	if c.prev > 0 && v <= 0 {
		c.rising = false
		c.min = 0
	}

	if c.rising {
		if v > c.prev {
			c.max = v
		}
	} else if v < c.prev {
		c.min = v
	}
	c.prev = v

	return hit
}

// Process implements Filter. It returns 1 on a crossing and 0 otherwise.
func (c *Crossing) Process(v float64) float64 {
	if c.Check(v) {
		return 1
	}
	return 0
}

// Reset implements Filter.
func (c *Crossing) Reset() {
	c.max, c.min, c.prev = 0, 0, 0
	c.rising = false
}
