package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planetfield/internal/planets"
)

// Stats summarizes a generated population.
type Stats struct {
	Count      int
	MeanRadius float64
	MeanDepth  float64
	MeanSpeed  float64
	MaxSpeed   float64
	RingShare  float64
	Palettes   map[planets.Palette]int
	Radii      []float64
	Depths     []float64
}

func Summarize(bodies []planets.Body) Stats {
	s := Stats{Count: len(bodies), Palettes: map[planets.Palette]int{}}
	if len(bodies) == 0 {
		return s
	}
	rings := 0
	for _, b := range bodies {
		speed := math.Hypot(b.VX, b.VY)
		s.MeanRadius += b.Radius
		s.MeanDepth += b.Depth
		s.MeanSpeed += speed
		s.MaxSpeed = math.Max(s.MaxSpeed, speed)
		s.Palettes[b.Palette]++
		s.Radii = append(s.Radii, b.Radius)
		s.Depths = append(s.Depths, b.Depth)
		if b.Ring {
			rings++
		}
	}
	n := float64(len(bodies))
	s.MeanRadius /= n
	s.MeanDepth /= n
	s.MeanSpeed /= n
	s.RingShare = float64(rings) / n
	return s
}

// Histogram counts values into bins equal-width bins spanning [lo, hi].
// Values outside the range land in the edge bins.
func Histogram(values []float64, bins int, lo, hi float64) []float64 {
	if bins <= 0 {
		return nil
	}
	out := make([]float64, bins)
	span := hi - lo
	for _, v := range values {
		i := 0
		if span > 0 {
			i = int((v - lo) / span * float64(bins))
		}
		out[max(0, min(bins-1, i))]++
	}
	return out
}

// Report renders the statistics with a radius and a depth histogram.
func Report(s Stats, minSize, maxSize float64) string {
	var b strings.Builder
	b.WriteString(Title.Render("population") + "\n")
	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("bodies", fmt.Sprintf("%d", s.Count))
	row("mean radius", fmt.Sprintf("%.1f", s.MeanRadius))
	row("mean depth", fmt.Sprintf("%.2f", s.MeanDepth))
	row("mean speed", fmt.Sprintf("%.4f", s.MeanSpeed))
	row("max speed", fmt.Sprintf("%.4f", s.MaxSpeed))
	row("ringed", fmt.Sprintf("%.1f%%", s.RingShare*100))

	if s.Count > 1 {
		b.WriteString("\n")
		b.WriteString(chart(Histogram(s.Radii, 20, minSize, maxSize), "radius") + "\n\n")
		b.WriteString(chart(Histogram(s.Depths, 20, planets.MinDepth, planets.MaxDepth), "depth") + "\n")
	}

	if len(s.Palettes) > 0 {
		b.WriteString("\n" + Title.Render("palettes") + "\n")
		keys := make([]planets.Palette, 0, len(s.Palettes))
		for p := range s.Palettes {
			keys = append(keys, p)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i][0] < keys[j][0] })
		for _, p := range keys {
			row(p[0], fmt.Sprintf("%d", s.Palettes[p]))
		}
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func chart(series []float64, caption string) string {
	return Subtle.Render(asciigraph.Plot(series,
		asciigraph.Height(5),
		asciigraph.Width(40),
		asciigraph.Caption(caption)))
}
