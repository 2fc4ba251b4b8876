// Package export writes vector snapshots of a planets layer.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gogpu/gg"
	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/render"
	"github.com/san-kum/planetfield/internal/storage"
)

// FrameToSVG draws bodies over the sky gradient at their simulated
// positions, with no pointer parallax. Gradients match the raster renderer.
func FrameToSVG(bodies []planets.Body, width, height float64, background [2]string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
<linearGradient id="sky" x1="0" y1="0" x2="0" y2="1">%s%s</linearGradient>
`, width, height, width, height, stop(0, background[0], 1), stop(1, background[1], 1)))

	for i, b := range bodies {
		p := b.Palette
		sb.WriteString(fmt.Sprintf(`<radialGradient id="glow%d">%s%s</radialGradient>
`, i, stop(0.8/1.35, p[1], 0.18), stop(1, p[1], 0)))
		sb.WriteString(fmt.Sprintf(`<radialGradient id="disc%d" fx="%.3f" fy="%.3f">%s%s%s%s</radialGradient>
`, i, 0.5-0.35/2, 0.5-0.35/2,
			stop(0, p[0], 1), stop(0.45, p[1], 1), stop(0.8, p[2], 1), stop(1, p[3], 0)))
		if b.Ring {
			sb.WriteString(fmt.Sprintf(`<linearGradient id="ring%d">%s%s%s</linearGradient>
`, i, stop(0, p[0], 0), stop(0.5, p[0], 0.55), stop(1, p[0], 0)))
		}
	}
	sb.WriteString(`</defs>
<rect width="100%" height="100%" fill="url(#sky)"/>
`)

	for i, b := range bodies {
		r := b.Radius
		sb.WriteString(fmt.Sprintf(`<g transform="translate(%.2f %.2f)">
<circle r="%.2f" fill="url(#glow%d)"/>
<circle r="%.2f" fill="url(#disc%d)"/>
`, b.X, b.Y, r*1.35, i, r, i))

		n := render.BandCount(r)
		step := 2 * r / float64(n)
		thick := step * 0.35
		sb.WriteString(fmt.Sprintf(`<g transform="rotate(%.3f)">`, b.Rotation*180/math.Pi))
		for k := 0; k < n; k++ {
			fill := "#ffffff"
			if k%2 == 1 {
				fill = "#000000"
			}
			y := -r + step*(float64(k)+0.5)
			sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.2f"/>`,
				-r, y-thick/2, 2*r, thick, fill, 0.04+0.01*float64(k%4)))
		}
		sb.WriteString("</g>\n")

		if b.Ring {
			rx := r * 1.6
			sb.WriteString(fmt.Sprintf(`<ellipse rx="%.2f" ry="%.2f" transform="rotate(%.3f)" fill="none" stroke="url(#ring%d)" stroke-width="%.2f"/>
`, rx, rx/2.8, b.RingTilt*180/math.Pi, i, math.Max(1.5, r*0.06)))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TraceToSVG draws the path of every body in a stored trace. Wraps show
// up as breaks in the path.
func TraceToSVG(samples []storage.Sample, width, height float64, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	paths := map[int][]storage.Sample{}
	for _, s := range samples {
		paths[s.Body] = append(paths[s.Body], s)
	}
	ids := make([]int, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	jump := math.Max(width, height) / 2
	for _, id := range ids {
		pts := paths[id]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor))
		for i, p := range pts {
			cmd := "L"
			if i == 0 || math.Hypot(p.X-pts[i-1].X, p.Y-pts[i-1].Y) > jump {
				cmd = "M"
			}
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, p.X, p.Y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// stop formats a gradient stop. Colours that fail to parse become transparent.
func stop(offset float64, c string, alpha float64) string {
	rgba, err := render.ParseColor(render.WithAlpha(c, alpha))
	if err != nil {
		rgba = gg.Transparent
	}
	return fmt.Sprintf(`<stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>`, offset, hex(rgba), rgba.A)
}

func hex(c gg.RGBA) string {
	to8 := func(v float64) int { return int(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}
