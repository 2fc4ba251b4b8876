package planets

import (
	"math"
	"math/rand"
	"testing"
)

func TestCreateBodyBounds(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)), nil)

	const (
		minSize = 60.0
		maxSize = 180.0
		speed   = 0.06
		w, h    = 1280.0, 720.0
	)

	for i := 0; i < 5000; i++ {
		b := gen.CreateBody(minSize, maxSize, speed, w, h)
		if b.Radius < minSize || b.Radius > maxSize {
			t.Fatalf("radius %f outside [%f, %f]", b.Radius, minSize, maxSize)
		}
		if b.Depth < MinDepth || b.Depth > MaxDepth {
			t.Fatalf("depth %f outside [%f, %f]", b.Depth, MinDepth, MaxDepth)
		}
		if math.Abs(b.VX) > speed*2 || math.Abs(b.VY) > speed*2 {
			t.Fatalf("drift (%f, %f) exceeds 2*speed", b.VX, b.VY)
		}
		if b.X < -b.Radius || b.X > w+b.Radius || b.Y < -b.Radius || b.Y > h+b.Radius {
			t.Fatalf("start (%f, %f) outside viewport extended by radius %f", b.X, b.Y, b.Radius)
		}
		if b.HueJitter < -10 || b.HueJitter > 10 {
			t.Fatalf("hue jitter %f outside [-10, 10]", b.HueJitter)
		}
	}
}

func TestRingFrequency(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)), nil)

	const n = 20000
	rings := 0
	for i := 0; i < n; i++ {
		if gen.CreateBody(10, 20, 0.1, 100, 100).Ring {
			rings++
		}
	}

	freq := float64(rings) / n
	if math.Abs(freq-RingProbability) > 0.02 {
		t.Errorf("ring frequency %f, want %f +/- 0.02", freq, RingProbability)
	}
}

func TestPaletteFromSet(t *testing.T) {
	set := []Palette{
		{"#000", "#111", "#222", "#333"},
		{"#444", "#555", "#666", "#777"},
	}
	gen := NewGenerator(rand.New(rand.NewSource(1)), set)

	seen := map[Palette]bool{}
	for i := 0; i < 200; i++ {
		p := gen.CreateBody(1, 2, 0, 10, 10).Palette
		if p != set[0] && p != set[1] {
			t.Fatalf("palette %v not from set", p)
		}
		seen[p] = true
	}
	if len(seen) != 2 {
		t.Errorf("expected both palettes to be chosen, saw %d", len(seen))
	}
}

func TestZeroSpeedIsStatic(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(3)), nil)
	b := gen.CreateBody(30, 30, 0, 200, 200)

	if b.VX != 0 || b.VY != 0 {
		t.Errorf("expected no drift, got (%f, %f)", b.VX, b.VY)
	}
	if b.Radius != 30 {
		t.Errorf("expected radius 30 for equal bounds, got %f", b.Radius)
	}
}

func TestPopulationSize(t *testing.T) {
	tests := []struct {
		count   int
		reduced bool
		want    int
	}{
		{10, false, 10},
		{10, true, 4},
		{6, true, 2},
		{3, true, 2},
		{0, true, 2},
		{0, false, 0},
		{20, true, 8},
	}

	for _, tt := range tests {
		if got := PopulationSize(tt.count, tt.reduced); got != tt.want {
			t.Errorf("PopulationSize(%d, %v) = %d, want %d", tt.count, tt.reduced, got, tt.want)
		}
	}
}

func TestPopulate(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(9)), nil)

	if got := gen.Populate(0, 1, 2, 0, 10, 10); got != nil {
		t.Errorf("expected nil population, got %d bodies", len(got))
	}
	if got := gen.Populate(6, 60, 180, 0.06, 800, 600); len(got) != 6 {
		t.Errorf("expected 6 bodies, got %d", len(got))
	}
}

func TestValidateBounds(t *testing.T) {
	if err := ValidateBounds(60, 180, 0.06); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateBounds(0, 10, 0); err != ErrInvalidBounds {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
	if err := ValidateBounds(20, 10, 0); err != ErrInvalidBounds {
		t.Errorf("expected ErrInvalidBounds for inverted bounds, got %v", err)
	}
	if err := ValidateBounds(10, 20, -1); err != ErrInvalidSpeed {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
	if err := ValidateBounds(10, 20, math.NaN()); err != ErrInvalidSpeed {
		t.Errorf("expected ErrInvalidSpeed for NaN, got %v", err)
	}
}
