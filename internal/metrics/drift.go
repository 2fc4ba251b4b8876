package metrics

import "math"

// Drift averages body speed in logical pixels per frame.
type Drift struct {
	name    string
	total   float64
	samples int
}

func NewDrift() *Drift {
	return &Drift{name: "mean_drift"}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(f Frame) {
	for _, b := range f.Bodies {
		d.total += math.Hypot(b.VX, b.VY)
		d.samples++
	}
}

func (d *Drift) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.total / float64(d.samples)
}

func (d *Drift) Reset() {
	d.total = 0
	d.samples = 0
}

// Coverage is the fraction of body observations whose centre lay inside
// the viewport. Bodies spend part of their life in the wrap margin.
type Coverage struct {
	name    string
	inside  int
	samples int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(f Frame) {
	w, h := f.Surface.Width, f.Surface.Height
	for _, b := range f.Bodies {
		c.samples++
		if b.X >= 0 && b.X <= w && b.Y >= 0 && b.Y <= h {
			c.inside++
		}
	}
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.inside = 0
	c.samples = 0
}
