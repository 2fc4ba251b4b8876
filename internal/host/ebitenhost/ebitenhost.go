// Package ebitenhost runs the planets layer inside an ebiten game loop.
//
// Layout reports the physical buffer size so the frame is shown without
// scaling on high-DPI monitors. Update is the host goroutine.
package ebitenhost

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/layer"
)

// Game is both the ebiten.Game and the layer's host.
type Game struct {
	host.Base

	w, h     float64
	dpr      float64
	laidOut  bool
	resized  bool
	ptrX     int
	ptrY     int
	touchIDs []ebiten.TouchID

	layer   *layer.Layer
	mountFn func() error
	pending *image.RGBA
	screen  *ebiten.Image
}

var _ host.Host = (*Game)(nil)

// New returns a game that mounts a layer for cfg on its first update.
func New(cfg *config.Config, prefs host.Preferences, opts ...layer.Option) *Game {
	g := &Game{Base: host.Base{Prefs: prefs}, ptrX: -1, ptrY: -1}
	g.layer = layer.New(g, cfg, opts...)
	g.mountFn = g.layer.Mount
	return g
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, prefs host.Preferences, opts ...layer.Option) error {
	g := New(cfg, prefs, opts...)
	defer g.layer.Unmount()

	ebiten.SetWindowTitle("planetfield")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Viewport() (float64, float64) { return g.w, g.h }
func (g *Game) DevicePixelRatio() float64    { return g.dpr }

func (g *Game) CoarsePointer() bool {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	return g.Prefs.CoarsePointer || len(g.touchIDs) > 0
}

func (g *Game) AcquireSurface() (host.Presenter, error) {
	if !g.laidOut {
		return nil, host.ErrNoSurface
	}
	return g, nil
}

func (g *Game) Present(frame *image.RGBA) {
	g.pending = frame
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.mountFn != nil {
		mount := g.mountFn
		g.mountFn = nil
		g.resized = false
		if err := mount(); err != nil {
			return err
		}
	}
	if g.resized {
		g.resized = false
		g.EmitResize()
	}
	if x, y := ebiten.CursorPosition(); x != g.ptrX || y != g.ptrY {
		g.ptrX, g.ptrY = x, y
		g.EmitPointer(logicalPoint(x, y, g.dpr))
	}
	g.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.pending == nil {
		return
	}
	b := g.pending.Rect
	if b.Empty() {
		return
	}
	if g.screen == nil || g.screen.Bounds().Size() != b.Size() {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.screen.WritePixels(g.pending.Pix)

	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(b.Dx()), float64(sh)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.screen, op)
}

// Layout records the logical viewport and returns the physical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := ebiten.Monitor().DeviceScaleFactor()
	w, h := float64(outsideWidth), float64(outsideHeight)
	if g.laidOut && (w != g.w || h != g.h || dpr != g.dpr) {
		g.resized = true
	}
	g.w, g.h, g.dpr = w, h, dpr
	g.laidOut = true
	return int(w * dpr), int(h * dpr)
}

// logicalPoint maps a cursor position in the physical screen returned by
// Layout back to logical pixels.
func logicalPoint(x, y int, dpr float64) (float64, float64) {
	if !(dpr > 0) {
		return float64(x), float64(y)
	}
	return float64(x) / dpr, float64(y) / dpr
}
