// Package render paints the planets background: a gradient sky followed
// by each body's glow, shaded disc, surface bands and optional ring.
package render

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/san-kum/planetfield/internal/input"
	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/surface"
)

const (
	DefaultParallax = 12.0

	glowScale   = 1.35
	glowAlpha   = 0.18
	ringScale   = 1.6
	ringAspect  = 2.8
	ringAlpha   = 0.55
	highlight   = 0.35
	bandAlphaLo = 0.04
)

// DefaultBackground holds the top and bottom sky stops.
var DefaultBackground = [2]string{"#070b1a", "#02030a"}

// Options tunes the renderer.
type Options struct {
	Parallax   float64   // max parallax offset in logical pixels at depth 1
	Background [2]string // vertical gradient, top then bottom
}

// DefaultOptions returns the stock renderer settings.
func DefaultOptions() Options {
	return Options{Parallax: DefaultParallax, Background: DefaultBackground}
}

type spriteKey struct {
	ring    bool
	radius  float64
	tilt    float64
	ratio   float64
	palette planets.Palette
}

type sprite struct {
	img  *image.RGBA
	half float64 // device pixels from the top-left corner to the body centre
}

// Renderer draws frames. Static layers (sky, glow and disc, ring) are
// rasterized once per surface geometry and composited every frame; the
// whole surface is still repainted each frame.
type Renderer struct {
	opts Options

	sky      *Raster
	skyState surface.State

	// sprites holds the last frame's sprites; spare is recycled as the next
	// frame's set.
	sprites map[spriteKey]*sprite
	spare   map[spriteKey]*sprite
}

// New returns a renderer.
func New(opts Options) *Renderer {
	if opts.Background[0] == "" || opts.Background[1] == "" {
		opts.Background = DefaultBackground
	}
	r := &Renderer{opts: opts}
	r.Reset()
	return r
}

// SetOptions replaces the renderer settings. A new background invalidates
// the cached sky.
func (r *Renderer) SetOptions(opts Options) {
	if opts.Background[0] == "" || opts.Background[1] == "" {
		opts.Background = DefaultBackground
	}
	if opts.Background != r.opts.Background {
		r.sky = nil
	}
	r.opts = opts
}

// Reset drops every cached layer.
func (r *Renderer) Reset() {
	r.sky = nil
	r.sprites = map[spriteKey]*sprite{}
	r.spare = map[spriteKey]*sprite{}
}

// Parallax returns the draw position of b: its simulated position shifted
// by up to strength×depth pixels toward the pointer's displacement from the
// viewport centre.
func Parallax(b planets.Body, s surface.State, p input.Sample, strength float64) (x, y float64) {
	cx, cy := s.Center()
	var nx, ny float64
	if cx > 0 {
		nx = (p.X - cx) / cx
	}
	if cy > 0 {
		ny = (p.Y - cy) / cy
	}
	k := strength * b.Depth
	return b.X + nx*k, b.Y + ny*k
}

// Render paints one frame. Bodies are drawn in slice order.
func (r *Renderer) Render(c Canvas, s surface.State, bodies []planets.Body, p input.Sample) {
	c.Clear()
	c.SetTransform(gg.Identity())
	c.Blit(r.skyFor(s).Image(), 0, 0)

	base := s.Transform()
	next := r.spare
	clear(next)
	for i := range bodies {
		b := &bodies[i]
		x, y := Parallax(*b, s, p, r.opts.Parallax)
		at := base.TransformPoint(gg.Pt(x, y))

		disc := r.sprite(next, spriteKey{radius: b.Radius, ratio: s.Ratio, palette: b.Palette})
		c.SetTransform(gg.Identity())
		c.Blit(disc.img, at.X-disc.half, at.Y-disc.half)

		c.SetTransform(base.Multiply(gg.Translate(x, y)).Multiply(gg.Rotate(b.Rotation)))
		drawBands(c, b.Radius)

		if b.Ring {
			ring := r.sprite(next, spriteKey{ring: true, radius: b.Radius, tilt: b.RingTilt, ratio: s.Ratio, palette: b.Palette})
			c.SetTransform(gg.Identity())
			c.Blit(ring.img, at.X-ring.half, at.Y-ring.half)
		}
	}
	r.sprites, r.spare = next, r.sprites
}

func (r *Renderer) skyFor(s surface.State) *Raster {
	if r.sky != nil && r.skyState == s {
		return r.sky
	}
	sky := NewRaster(s.BufferWidth, s.BufferHeight)
	sky.SetTransform(s.Transform())
	grad := gg.NewLinearGradientBrush(0, 0, 0, s.Height).
		AddColorStop(0, paint(r.opts.Background[0], 1)).
		AddColorStop(1, paint(r.opts.Background[1], 1))
	p := gg.NewPath()
	p.Rectangle(0, 0, s.Width, s.Height)
	sky.Fill(p, grad)

	r.sky, r.skyState = sky, s
	return sky
}

func (r *Renderer) sprite(next map[spriteKey]*sprite, k spriteKey) *sprite {
	if sp, ok := next[k]; ok {
		return sp
	}
	sp, ok := r.sprites[k]
	if !ok {
		if k.ring {
			sp = newRingSprite(k)
		} else {
			sp = newDiscSprite(k)
		}
	}
	next[k] = sp
	return sp
}

func newCanvasFor(extent, ratio float64) (*Raster, float64) {
	half := math.Ceil(extent*ratio) + 2
	c := NewRaster(int(half*2), int(half*2))
	c.SetTransform(gg.Translate(half, half).Multiply(gg.Scale(ratio, ratio)))
	return c, half
}

// newDiscSprite renders the glow and the shaded disc centred on the sprite.
func newDiscSprite(k spriteKey) *sprite {
	rad := k.radius
	c, half := newCanvasFor(rad*glowScale, k.ratio)

	glow := gg.NewRadialGradientBrush(0, 0, rad*0.8, rad*glowScale).
		AddColorStop(0, paint(k.palette[1], glowAlpha)).
		AddColorStop(1, paint(k.palette[1], 0))
	p := gg.NewPath()
	p.Circle(0, 0, rad*glowScale)
	c.Fill(p, glow)

	disc := gg.NewRadialGradientBrush(0, 0, 0, rad).
		SetFocus(-rad*highlight, -rad*highlight).
		AddColorStop(0, paint(k.palette[0], 1)).
		AddColorStop(0.45, paint(k.palette[1], 1)).
		AddColorStop(0.8, paint(k.palette[2], 1)).
		AddColorStop(1, paint(k.palette[3], 0))
	p = gg.NewPath()
	p.Circle(0, 0, rad)
	c.Fill(p, disc)

	return &sprite{img: c.Image(), half: half}
}

// newRingSprite renders a tilted elliptical ring whose stroke fades out at
// both ends.
func newRingSprite(k spriteKey) *sprite {
	rx := k.radius * ringScale
	ry := rx / ringAspect
	width := math.Max(1.5, k.radius*0.06)
	c, half := newCanvasFor(rx+width, k.ratio)

	c.SetTransform(gg.Translate(half, half).
		Multiply(gg.Scale(k.ratio, k.ratio)).
		Multiply(gg.Rotate(k.tilt)))
	grad := gg.NewLinearGradientBrush(-rx, 0, rx, 0).
		AddColorStop(0, paint(k.palette[0], 0)).
		AddColorStop(0.5, paint(k.palette[0], ringAlpha)).
		AddColorStop(1, paint(k.palette[0], 0))
	c.Fill(ellipseStroke(rx, ry, width), grad)

	return &sprite{img: c.Image(), half: half}
}

// BandCount is the number of surface bands for a body of radius r, 3 to 5.
func BandCount(r float64) int {
	return 3 + int(r)%3
}

// drawBands strokes translucent horizontal strips across the body in the
// current (body-local, rotated) space. Bands are not clipped to the disc;
// their low opacity hides the overflow.
func drawBands(c Canvas, r float64) {
	n := BandCount(r)
	step := 2 * r / float64(n)
	thick := step * 0.35
	for i := 0; i < n; i++ {
		y := -r + step*(float64(i)+0.5)
		a := bandAlphaLo + 0.01*float64(i%4)
		col := gg.RGBA{R: 1, G: 1, B: 1, A: a}
		if i%2 == 1 {
			col = gg.RGBA{A: a}
		}
		p := gg.NewPath()
		p.Rectangle(-r, y-thick/2, 2*r, thick)
		c.Fill(p, gg.Solid(col))
	}
}

// ellipseStroke returns the outline of an ellipse of width w as a filled
// annulus: the outer edge runs one way and the inner edge the other, so
// the inner area has zero winding.
func ellipseStroke(rx, ry, w float64) *gg.Path {
	p := gg.NewPath()
	p.Ellipse(0, 0, rx+w/2, ry+w/2)

	irx, iry := math.Max(0, rx-w/2), math.Max(0, ry-w/2)
	const k = 0.5522847498307936
	ox, oy := irx*k, iry*k
	p.MoveTo(irx, 0)
	p.CubicTo(irx, -oy, ox, -iry, 0, -iry)
	p.CubicTo(-ox, -iry, -irx, -oy, -irx, 0)
	p.CubicTo(-irx, oy, -ox, iry, 0, iry)
	p.CubicTo(ox, iry, irx, oy, irx, 0)
	p.Close()
	return p
}
