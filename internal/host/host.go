// Package host defines the environment a planets layer runs in and the
// pieces every concrete host shares.
//
// A host delivers resize, pointer and frame callbacks from a single
// goroutine. Frame callbacks are one-shot, like a display refresh request:
// a callback that wants another frame must ask again.
package host

import (
	"errors"
	"image"

	"github.com/san-kum/planetfield/internal/surface"
)

// ErrNoSurface is returned by AcquireSurface when the host cannot present frames.
var ErrNoSurface = errors.New("host: drawing surface unavailable")

// FrameHandle identifies a pending frame request. The zero value is never issued.
type FrameHandle uint64

// Presenter shows finished frames. It is decorative output only and never
// consumes input.
type Presenter interface {
	Present(frame *image.RGBA)
}

// Host is the environment capability a layer depends on.
type Host interface {
	surface.Viewport

	PrefersReducedMotion() bool
	CoarsePointer() bool

	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)

	OnResize(fn func()) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())

	AcquireSurface() (Presenter, error)
}

// Preferences are the media preferences a host reports.
type Preferences struct {
	ReducedMotion bool
	CoarsePointer bool
}

// Base implements the callback plumbing of Host. Concrete hosts embed it
// and call Tick, EmitResize and EmitPointer from their event loop.
type Base struct {
	Prefs Preferences

	frames  FrameQueue
	resize  Listeners[func()]
	pointer Listeners[func(x, y float64)]
}

func (b *Base) PrefersReducedMotion() bool { return b.Prefs.ReducedMotion }
func (b *Base) CoarsePointer() bool        { return b.Prefs.CoarsePointer }

func (b *Base) RequestFrame(fn func()) FrameHandle { return b.frames.Request(fn) }
func (b *Base) CancelFrame(h FrameHandle)          { b.frames.Cancel(h) }

func (b *Base) OnResize(fn func()) func() { return b.resize.Add(fn) }

func (b *Base) OnPointerMove(fn func(x, y float64)) func() { return b.pointer.Add(fn) }

// Tick runs the frame callbacks requested before this call.
func (b *Base) Tick() int { return b.frames.Flush() }

// EmitResize notifies resize listeners.
func (b *Base) EmitResize() {
	b.resize.Each(func(fn func()) { fn() })
}

// EmitPointer notifies pointer listeners of a move to (x, y) in logical pixels.
func (b *Base) EmitPointer(x, y float64) {
	b.pointer.Each(func(fn func(x, y float64)) { fn(x, y) })
}

// PendingFrames reports queued frame callbacks.
func (b *Base) PendingFrames() int { return b.frames.Len() }

// ActiveListeners reports registered resize and pointer listeners.
func (b *Base) ActiveListeners() int { return b.resize.Len() + b.pointer.Len() }
