package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/surface"
)

func frame(wraps int, bodies ...planets.Body) Frame {
	return Frame{
		Bodies:  bodies,
		Wraps:   wraps,
		Surface: surface.State{Width: 100, Height: 100, Ratio: 1},
	}
}

func TestWrapRate(t *testing.T) {
	m := NewWrapRate()
	if m.Value() != 0 {
		t.Error("expected zero before any frame")
	}

	m.Observe(frame(2))
	m.Observe(frame(0))
	if m.Value() != 1 {
		t.Errorf("expected 1 wrap per frame, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDrift(t *testing.T) {
	m := NewDrift()
	m.Observe(frame(0, planets.Body{VX: 3, VY: 4}, planets.Body{VX: 0, VY: 0}))

	if math.Abs(m.Value()-2.5) > 1e-9 {
		t.Errorf("expected mean drift 2.5, got %f", m.Value())
	}
}

func TestCoverage(t *testing.T) {
	m := NewCoverage()
	if m.Value() != 1 {
		t.Error("expected full coverage with no samples")
	}

	m.Observe(frame(0, planets.Body{X: 50, Y: 50}, planets.Body{X: -20, Y: 50}))
	if m.Value() != 0.5 {
		t.Errorf("expected coverage 0.5, got %f", m.Value())
	}
}

func TestStandardSet(t *testing.T) {
	set := Standard()
	set.Observe(frame(1, planets.Body{X: 10, Y: 10, VX: 1}))
	set.Observe(frame(1, planets.Body{X: 11, Y: 10, VX: 1}))

	values := set.Values()
	if values["frames"] != 2 {
		t.Errorf("expected 2 frames, got %f", values["frames"])
	}
	if values["wrap_rate"] != 1 {
		t.Errorf("expected wrap rate 1, got %f", values["wrap_rate"])
	}
	if len(values) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(values))
	}

	set.Reset()
	if set.Values()["frames"] != 0 {
		t.Error("expected reset to clear frame count")
	}
}
