package host

import (
	"image"
)

// Headless is an in-memory host. The caller drives it: Step delivers one
// refresh, Resize and MovePointer deliver input events. It backs the
// render and record commands and the tests.
type Headless struct {
	Base

	w, h   float64
	dpr    float64
	noSurf bool

	frames   int
	lastSize image.Point
	onFrame  func(*image.RGBA)
}

// HeadlessOption configures a Headless host.
type HeadlessOption func(*Headless)

// WithPreferences sets the reported media preferences.
func WithPreferences(p Preferences) HeadlessOption {
	return func(h *Headless) { h.Prefs = p }
}

// WithoutSurface makes AcquireSurface fail.
func WithoutSurface() HeadlessOption {
	return func(h *Headless) { h.noSurf = true }
}

// WithFrameSink receives every presented frame. The image is reused by the
// layer, so sinks that keep it must copy.
func WithFrameSink(fn func(*image.RGBA)) HeadlessOption {
	return func(h *Headless) { h.onFrame = fn }
}

// NewHeadless returns a w×h host at the given device pixel ratio.
func NewHeadless(w, h, dpr float64, opts ...HeadlessOption) *Headless {
	hl := &Headless{w: w, h: h, dpr: dpr}
	for _, opt := range opts {
		opt(hl)
	}
	return hl
}

func (h *Headless) Viewport() (float64, float64) { return h.w, h.h }
func (h *Headless) DevicePixelRatio() float64    { return h.dpr }

func (h *Headless) AcquireSurface() (Presenter, error) {
	if h.noSurf {
		return nil, ErrNoSurface
	}
	return headlessPresenter{h}, nil
}

// Step delivers one refresh and reports how many frame callbacks ran.
func (h *Headless) Step() int {
	return h.Tick()
}

// Resize changes the viewport and notifies listeners.
func (h *Headless) Resize(w, hh, dpr float64) {
	h.w, h.h, h.dpr = w, hh, dpr
	h.EmitResize()
}

// MovePointer delivers a pointer move.
func (h *Headless) MovePointer(x, y float64) {
	h.EmitPointer(x, y)
}

// Presented reports how many frames were presented and the size of the last one.
func (h *Headless) Presented() (int, image.Point) {
	return h.frames, h.lastSize
}

type headlessPresenter struct{ h *Headless }

func (p headlessPresenter) Present(frame *image.RGBA) {
	p.h.frames++
	p.h.lastSize = frame.Rect.Size()
	if p.h.onFrame != nil {
		p.h.onFrame(frame)
	}
}
