// Package tui previews the planets layer in a terminal. Every character
// cell shows two vertically stacked pixels using the upper half block.
package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/planetfield/internal/host"
)

const (
	// A cell stands for CellWidth×CellHeight logical pixels, so the frame
	// buffer comes out at one pixel per column and two per row.
	CellWidth  = 8
	CellHeight = 16
	CellRatio  = 1.0 / CellWidth

	upperHalf = "▀"
)

// Terminal is the host side of the preview.
type Terminal struct {
	host.Base

	cols, rows int
	frame      *image.RGBA
}

var _ host.Host = (*Terminal)(nil)

func (t *Terminal) Viewport() (float64, float64) {
	return float64(t.cols * CellWidth), float64(t.rows * CellHeight)
}

func (t *Terminal) DevicePixelRatio() float64 { return CellRatio }

func (t *Terminal) AcquireSurface() (host.Presenter, error) {
	if t.cols <= 0 || t.rows <= 0 {
		return nil, host.ErrNoSurface
	}
	return t, nil
}

func (t *Terminal) Present(frame *image.RGBA) {
	t.frame = frame
}

// SetSize changes the cell grid and reports whether it differed.
func (t *Terminal) SetSize(cols, rows int) bool {
	if cols == t.cols && rows == t.rows {
		return false
	}
	t.cols, t.rows = cols, rows
	return true
}

// CellPoint maps a cell to the logical pixel at its centre.
func CellPoint(col, row int) (x, y float64) {
	return float64(col*CellWidth) + CellWidth/2, float64(row*CellHeight) + CellHeight/2
}

// Frame renders the last presented frame as half-block cells.
func (t *Terminal) Frame() string {
	if t.frame == nil {
		return ""
	}
	img := t.frame
	b := img.Rect
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hex(img, x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = hex(img, x, y+1)
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(upperHalf))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// hex reads a premultiplied pixel. Frames are painted over an opaque sky,
// so alpha is ignored.
func hex(img *image.RGBA, x, y int) string {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return fmt.Sprintf("#%02x%02x%02x", p[0], p[1], p[2])
}
