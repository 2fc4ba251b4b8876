// Package surface sizes the drawing buffer to the viewport and device
// pixel density.
package surface

import (
	"math"

	"github.com/gogpu/gg"
)

// DefaultMaxRatio caps the device pixel ratio to bound memory on dense displays.
const DefaultMaxRatio = 2.0

// Viewport reports the current logical viewport and device pixel ratio.
type Viewport interface {
	Viewport() (w, h float64)
	DevicePixelRatio() float64
}

// State is a snapshot of the surface geometry.
type State struct {
	Width, Height float64 // logical pixels
	Ratio         float64
	BufferWidth   int // physical pixels
	BufferHeight  int
}

// Transform is the base drawing transform. Every frame starts from it so
// that drawing calls use logical coordinates.
func (s State) Transform() gg.Matrix {
	return gg.Scale(s.Ratio, s.Ratio)
}

// Center returns the logical viewport centre.
func (s State) Center() (x, y float64) {
	return s.Width / 2, s.Height / 2
}

// Manager owns the surface state.
type Manager struct {
	vp       Viewport
	maxRatio float64
	state    State
}

// NewManager returns a manager reading from vp. maxRatio <= 0 selects DefaultMaxRatio.
func NewManager(vp Viewport, maxRatio float64) *Manager {
	if !(maxRatio > 0) {
		maxRatio = DefaultMaxRatio
	}
	return &Manager{vp: vp, maxRatio: maxRatio}
}

// Resize recomputes the surface from the current viewport and returns it.
// The new state replaces the old one in a single assignment.
func (m *Manager) Resize() State {
	w, h := m.vp.Viewport()
	m.state = Compute(w, h, m.vp.DevicePixelRatio(), m.maxRatio)
	return m.state
}

// State returns the last computed state.
func (m *Manager) State() State {
	return m.state
}

// Compute derives the surface state for a viewport. An unusable ratio
// falls back to 1.
func Compute(w, h, dpr, maxRatio float64) State {
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	ratio := math.Min(dpr, maxRatio)
	w = math.Max(0, w)
	h = math.Max(0, h)
	return State{
		Width:        w,
		Height:       h,
		Ratio:        ratio,
		BufferWidth:  int(math.Round(w * ratio)),
		BufferHeight: int(math.Round(h * ratio)),
	}
}
