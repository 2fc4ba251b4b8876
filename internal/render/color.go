package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// WithAlpha converts a "#RRGGBB" or "#RGB" colour into an "rgba(r,g,b,a)"
// string carrying alpha. Any other input, including strings that are
// already in rgba() form, is returned unchanged.
func WithAlpha(c string, alpha float64) string {
	if !strings.HasPrefix(c, "#") {
		return c
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return c
	}
	r, g, b := col.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatAlpha(alpha))
}

// ParseColor parses "#RGB", "#RRGGBB", "rgb(r,g,b)" and "rgba(r,g,b,a)".
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		col, err := colorful.Hex(s)
		if err != nil {
			return gg.Transparent, fmt.Errorf("render: bad hex colour %q: %w", s, err)
		}
		return gg.RGBA{R: col.R, G: col.G, B: col.B, A: 1}, nil
	}

	var body string
	var want int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body, want = s[len("rgba("):len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body, want = s[len("rgb("):len(s)-1], 3
	default:
		return gg.Transparent, fmt.Errorf("render: unsupported colour %q", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != want {
		return gg.Transparent, fmt.Errorf("render: colour %q needs %d components", s, want)
	}
	v := [4]float64{0, 0, 0, 1}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return gg.Transparent, fmt.Errorf("render: colour %q: %w", s, err)
		}
		v[i] = f
	}
	return gg.RGBA{
		R: clamp(v[0]/255, 0, 1),
		G: clamp(v[1]/255, 0, 1),
		B: clamp(v[2]/255, 0, 1),
		A: clamp(v[3], 0, 1),
	}, nil
}

// paint resolves a palette entry at alpha. Unparseable entries render as
// transparent.
func paint(c string, alpha float64) gg.RGBA {
	col, err := ParseColor(WithAlpha(c, alpha))
	if err != nil {
		return gg.Transparent
	}
	return col
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(clamp(a, 0, 1), 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
