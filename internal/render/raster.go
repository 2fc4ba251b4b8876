package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// Canvas is the drawing surface the renderer paints on. Paths and brushes
// are given in user space and mapped through the current transform, the
// way a 2D canvas context behaves.
type Canvas interface {
	Size() (w, h int)
	Clear()
	SetTransform(m gg.Matrix)
	Fill(p *gg.Path, b gg.Brush)
	// Blit composites src with its top-left corner at device position (x, y).
	Blit(src *image.RGBA, x, y float64)
}

// Raster is a Canvas backed by an *image.RGBA. Path coverage comes from an
// anti-aliasing vector rasterizer; colour comes from gg brushes sampled at
// each covered pixel centre.
type Raster struct {
	img *image.RGBA
	m   gg.Matrix
	inv gg.Matrix
	z   vector.Rasterizer
}

var _ Canvas = (*Raster)(nil)

// NewRaster allocates a w×h raster.
func NewRaster(w, h int) *Raster {
	r := &Raster{m: gg.Identity(), inv: gg.Identity()}
	r.Resize(w, h)
	return r
}

// Resize reallocates the buffer when the size changes. Contents are not kept.
func (r *Raster) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if r.img != nil && r.img.Rect.Dx() == w && r.img.Rect.Dy() == h {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image returns the backing buffer.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Size() (int, int) {
	return r.img.Rect.Dx(), r.img.Rect.Dy()
}

func (r *Raster) Clear() {
	clear(r.img.Pix)
}

func (r *Raster) SetTransform(m gg.Matrix) {
	r.m = m
	r.inv = m.Invert()
}

func (r *Raster) Fill(p *gg.Path, b gg.Brush) {
	dev := p.Transform(r.m)
	box := pathBounds(dev).Intersect(r.img.Rect)
	if box.Empty() {
		return
	}

	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	for _, el := range dev.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			r.z.MoveTo(float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case gg.LineTo:
			r.z.LineTo(float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case gg.QuadTo:
			r.z.QuadTo(
				float32(e.Control.X)-ox, float32(e.Control.Y)-oy,
				float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case gg.CubicTo:
			r.z.CubeTo(
				float32(e.Control1.X)-ox, float32(e.Control1.Y)-oy,
				float32(e.Control2.X)-ox, float32(e.Control2.Y)-oy,
				float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case gg.Close:
			r.z.ClosePath()
		}
	}
	r.z.ClosePath()

	r.z.Draw(r.img, box, r.source(b), box.Min)
}

func (r *Raster) Blit(src *image.RGBA, x, y float64) {
	if x == math.Trunc(x) && y == math.Trunc(y) {
		at := image.Pt(int(x), int(y))
		draw.Draw(r.img, src.Rect.Sub(src.Rect.Min).Add(at), src, src.Rect.Min, draw.Over)
		return
	}
	aff := f64.Aff3{
		1, 0, x - float64(src.Rect.Min.X),
		0, 1, y - float64(src.Rect.Min.Y),
	}
	xdraw.ApproxBiLinear.Transform(r.img, aff, src, src.Rect, xdraw.Over, nil)
}

func (r *Raster) source(b gg.Brush) image.Image {
	if s, ok := b.(gg.SolidBrush); ok {
		return image.NewUniform(s.Color.Color())
	}
	return &brushImage{brush: b, inv: r.inv}
}

// brushImage samples a user-space brush at device pixel centres.
type brushImage struct {
	brush gg.Brush
	inv   gg.Matrix
}

func (b *brushImage) ColorModel() color.Model { return color.NRGBAModel }

func (b *brushImage) Bounds() image.Rectangle {
	return image.Rect(math.MinInt32/2, math.MinInt32/2, math.MaxInt32/2, math.MaxInt32/2)
}

func (b *brushImage) At(x, y int) color.Color {
	p := b.inv.TransformPoint(gg.Pt(float64(x)+0.5, float64(y)+0.5))
	return b.brush.ColorAt(p.X, p.Y).Color()
}

func pathBounds(p *gg.Path) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt gg.Point) {
		minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
		maxX, maxY = math.Max(maxX, pt.X), math.Max(maxY, pt.Y)
	}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			add(e.Point)
		case gg.LineTo:
			add(e.Point)
		case gg.QuadTo:
			add(e.Control)
			add(e.Point)
		case gg.CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}
