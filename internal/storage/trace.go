package storage

import (
	"strconv"

	"github.com/san-kum/planetfield/internal/metrics"
)

// Sample is one body position at one frame.
type Sample struct {
	Frame    int
	Body     int
	X, Y     float64
	Rotation float64
}

// Trace samples body positions every n-th frame. It is a metrics.Observer
// so a layer can feed it directly.
type Trace struct {
	every   int
	samples []Sample
}

var _ metrics.Observer = (*Trace)(nil)

func NewTrace(every int) *Trace {
	if every < 1 {
		every = 1
	}
	return &Trace{every: every}
}

func (t *Trace) Observe(f metrics.Frame) {
	if f.Index%t.every != 0 {
		return
	}
	for i, b := range f.Bodies {
		t.samples = append(t.samples, Sample{Frame: f.Index, Body: i, X: b.X, Y: b.Y, Rotation: b.Rotation})
	}
}

func (t *Trace) Samples() []Sample {
	return t.samples
}

func (t *Trace) records() [][]string {
	rows := make([][]string, 0, len(t.samples)+1)
	rows = append(rows, []string{"frame", "body", "x", "y", "rotation"})
	for _, s := range t.samples {
		rows = append(rows, []string{
			strconv.Itoa(s.Frame),
			strconv.Itoa(s.Body),
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(s.Rotation),
		})
	}
	return rows
}
