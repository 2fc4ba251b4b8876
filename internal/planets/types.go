package planets

import "math"

// Palette is an ordered highlight, mid, shadow, fade set of colours.
// Entries are "#RRGGBB", "#RGB" or a preformatted "rgba(r,g,b,a)" string.
type Palette [4]string

// Body is one simulated planet.
type Body struct {
	X, Y     float64
	Radius   float64
	Palette  Palette
	Depth    float64 // [0.4, 1.0], nearer bodies are larger values
	VX, VY   float64
	Rotation float64
	Spin     float64
	Ring     bool
	RingTilt float64

	// HueJitter is generated for shading variation; the renderer does not read it.
	HueJitter float64
}

// Margin is how far the centre may travel past an edge before wrapping.
// It covers the ring and glow extent.
func (b Body) Margin() float64 {
	return b.Radius * WrapMargin
}

const (
	MinDepth        = 0.4
	MaxDepth        = 1.0
	RingProbability = 0.35
	WrapMargin      = 1.8

	reducedFraction = 0.4
	reducedMinimum  = 2
)

var defaultPalettes = []Palette{
	{"#ffd6a5", "#ff9f68", "#7a3e2b", "rgba(122,62,43,0)"},
	{"#bde0fe", "#5fa8d3", "#1b4965", "rgba(27,73,101,0)"},
	{"#e0c3fc", "#9d8df1", "#3c2a74", "rgba(60,42,116,0)"},
	{"#caffbf", "#52b788", "#1b4332", "#1b4332"},
	{"#fff", "#f4a261", "#6d3b1f", "rgba(109,59,31,0)"},
}

// DefaultPalettes returns a copy of the built-in palette set.
func DefaultPalettes() []Palette {
	out := make([]Palette, len(defaultPalettes))
	copy(out, defaultPalettes)
	return out
}

// PopulationSize returns the realized body count. Reduced motion shrinks
// the population instead of stopping motion.
func PopulationSize(count int, reducedMotion bool) int {
	if count < 0 {
		count = 0
	}
	if !reducedMotion {
		return count
	}
	return max(reducedMinimum, int(math.Floor(float64(count)*reducedFraction)))
}

func isInf(v float64) bool {
	return math.IsInf(v, 0) || math.IsNaN(v)
}
