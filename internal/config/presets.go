package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": withDefaults(func(c *Config) {
		c.Count, c.Speed = 4, 0.03
	}),
	"dense": withDefaults(func(c *Config) {
		c.Count, c.MinSize, c.MaxSize = 14, 30, 110
	}),
	"giants": withDefaults(func(c *Config) {
		c.Count, c.MinSize, c.MaxSize, c.RingProbability = 3, 160, 260, 0.7
	}),
	"drift": withDefaults(func(c *Config) {
		c.Speed, c.Parallax = 0.2, 24
	}),
	"still": withDefaults(func(c *Config) {
		c.Speed, c.Parallax, c.ReducedMotion = 0, 0, On
	}),
}

func withDefaults(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
