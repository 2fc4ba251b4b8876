// Package input tracks the pointer position that drives parallax.
package input

// Sample is the last known pointer position in logical pixels.
type Sample struct {
	X, Y float64
}

// Tracker is a single-writer, single-reader pointer cell scoped to one
// layer. The host's move callback writes it and the renderer reads it, both
// on the host goroutine, so it carries no lock.
type Tracker struct {
	sample Sample
	coarse bool
	moved  bool
}

// NewTracker centres the sample in a w×h viewport. On coarse (touch)
// pointers every move is ignored and parallax stays centred.
func NewTracker(w, h float64, coarse bool) *Tracker {
	return &Tracker{sample: Sample{X: w / 2, Y: h / 2}, coarse: coarse}
}

// Move records a pointer position.
func (t *Tracker) Move(x, y float64) {
	if t.coarse {
		return
	}
	t.sample = Sample{X: x, Y: y}
	t.moved = true
}

// Recenter moves the sample to the centre of a resized viewport if no
// pointer position has been recorded yet.
func (t *Tracker) Recenter(w, h float64) {
	if t.moved {
		return
	}
	t.sample = Sample{X: w / 2, Y: h / 2}
}

// Sample returns the current pointer sample.
func (t *Tracker) Sample() Sample {
	return t.sample
}

// Coarse reports whether sampling is suppressed.
func (t *Tracker) Coarse() bool {
	return t.coarse
}
