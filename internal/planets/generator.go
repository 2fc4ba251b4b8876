package planets

import (
	"math"
	"math/rand"
	"time"
)

// Rand is the random source capability used by the generator.
// *rand.Rand satisfies it; tests inject a seeded one.
type Rand interface {
	Float64() float64
}

// Generator creates bodies with randomized visual and motion parameters.
type Generator struct {
	rng             Rand
	palettes        []Palette
	ringProbability float64
}

// NewGenerator returns a generator drawing from rng. A nil rng selects an
// unseeded source. An empty palette set falls back to DefaultPalettes.
func NewGenerator(rng Rand, palettes []Palette) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(palettes) == 0 {
		palettes = DefaultPalettes()
	}
	return &Generator{rng: rng, palettes: palettes, ringProbability: RingProbability}
}

// SetRingProbability overrides the chance that a body carries a ring.
func (g *Generator) SetRingProbability(p float64) {
	g.ringProbability = math.Max(0, math.Min(1, p))
}

// CreateBody generates one body for a w×h viewport. The start position may
// lie up to one radius outside the viewport so bodies do not pop in at edges.
func (g *Generator) CreateBody(minSize, maxSize, baseSpeed, w, h float64) Body {
	r := g.between(minSize, maxSize)
	depth := g.between(MinDepth, MaxDepth)
	drift := baseSpeed * (0.4 + depth)

	return Body{
		X:         g.between(-r, w+r),
		Y:         g.between(-r, h+r),
		Radius:    r,
		Palette:   g.palettes[g.index(len(g.palettes))],
		Depth:     depth,
		VX:        (g.rng.Float64()*2 - 1) * drift,
		VY:        (g.rng.Float64()*2 - 1) * drift,
		Rotation:  g.rng.Float64() * 2 * math.Pi,
		Spin:      (g.rng.Float64() - 0.5) * 0.002,
		Ring:      g.rng.Float64() < g.ringProbability,
		RingTilt:  (g.rng.Float64() - 0.5) * 0.9,
		HueJitter: g.between(-10, 10),
	}
}

// Populate creates n bodies.
func (g *Generator) Populate(n int, minSize, maxSize, baseSpeed, w, h float64) []Body {
	if n <= 0 {
		return nil
	}
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i] = g.CreateBody(minSize, maxSize, baseSpeed, w, h)
	}
	return bodies
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) index(n int) int {
	i := int(g.rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
