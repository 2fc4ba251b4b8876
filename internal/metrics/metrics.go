package metrics

import (
	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/surface"
)

// Frame is what the layer reports after each rendered tick.
type Frame struct {
	Index   int
	Bodies  []planets.Body
	Wraps   int
	Surface surface.State
}

type Observer interface {
	Observe(f Frame)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans a frame out to several metrics.
type Set []Metric

func (s Set) Observe(f Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Standard returns the metrics recorded with every stored run.
func Standard() Set {
	return Set{NewFrameCount(), NewWrapRate(), NewDrift(), NewCoverage()}
}
