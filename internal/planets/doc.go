// Package planets provides the simulated bodies of the planets background.
//
// The package covers two stages of the animation:
//
//   - [Generator]: procedural creation of [Body] values from a palette set
//   - [Advance]: per-frame drift, spin and toroidal wraparound
//
// # Example
//
//	gen := planets.NewGenerator(nil, planets.DefaultPalettes())
//	bodies := gen.Populate(planets.PopulationSize(6, false), 60, 180, 0.06, 1280, 720)
//	for i := range bodies {
//		planets.Advance(&bodies[i], 1280, 720)
//	}
//
// # Thread Safety
//
// Bodies are plain values mutated in place. They are owned by exactly one
// layer and touched only from its frame callback.
package planets
