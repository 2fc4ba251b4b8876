package gui

import (
	"image"
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/planetfield/internal/host"
)

// Window is a raylib host. The raylib event loop is the host goroutine:
// resize, pointer and frame callbacks all run from Pump.
type Window struct {
	host.Base

	w, h    float64
	dpr     float64
	lastPtr rl.Vector2

	tex     rl.Texture2D
	texSize image.Point
	pending *image.RGBA
}

var _ host.Host = (*Window)(nil)

func newWindow(prefs host.Preferences) *Window {
	w := &Window{Base: host.Base{Prefs: prefs}}
	w.refresh()
	w.lastPtr = rl.GetMousePosition()
	return w
}

func (w *Window) Viewport() (float64, float64) { return w.w, w.h }
func (w *Window) DevicePixelRatio() float64    { return w.dpr }

func (w *Window) CoarsePointer() bool {
	return w.Prefs.CoarsePointer || rl.GetTouchPointCount() > 0
}

func (w *Window) AcquireSurface() (host.Presenter, error) {
	if !rl.IsWindowReady() {
		return nil, host.ErrNoSurface
	}
	return w, nil
}

// Present queues a frame for the next draw.
func (w *Window) Present(frame *image.RGBA) {
	w.pending = frame
}

// Pump delivers pending window events and one refresh.
func (w *Window) Pump() {
	if rl.IsWindowResized() {
		w.refresh()
		w.EmitResize()
	}
	if pos := rl.GetMousePosition(); pos != w.lastPtr {
		w.lastPtr = pos
		w.EmitPointer(float64(pos.X), float64(pos.Y))
	}
	w.Tick()
}

// Draw uploads the last presented frame and stretches it over the window.
func (w *Window) Draw() {
	if w.pending == nil {
		return
	}
	size := w.pending.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	if size != w.texSize {
		w.unload()
		img := rl.GenImageColor(size.X, size.Y, rl.Blank)
		w.tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(w.tex, rl.FilterBilinear)
		w.texSize = size
	}
	rl.UpdateTexture(w.tex, rgbaPixels(w.pending))

	src := rl.NewRectangle(0, 0, float32(size.X), float32(size.Y))
	dst := rl.NewRectangle(0, 0, float32(w.w), float32(w.h))
	rl.DrawTexturePro(w.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (w *Window) unload() {
	if w.texSize != (image.Point{}) {
		rl.UnloadTexture(w.tex)
		w.texSize = image.Point{}
	}
}

func (w *Window) refresh() {
	w.w = float64(rl.GetScreenWidth())
	w.h = float64(rl.GetScreenHeight())
	w.dpr = float64(rl.GetWindowScaleDPI().X)
}

// rgbaPixels views a tightly packed RGBA buffer as raylib pixels.
func rgbaPixels(img *image.RGBA) []color.RGBA {
	n := len(img.Pix) / 4
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), n)
}
