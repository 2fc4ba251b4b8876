package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/render"
	"github.com/san-kum/planetfield/internal/surface"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount   = 6
	DefaultMinSize = 60.0
	DefaultMaxSize = 180.0
	DefaultSpeed   = 0.06
	DefaultFPS     = 60
	DefaultWidth   = 1280
	DefaultHeight  = 720

	Auto   = "auto"
	On     = "on"
	Off    = "off"
	Fine   = "fine"
	Coarse = "coarse"
)

type Config struct {
	Count           int               `yaml:"count"`
	MinSize         float64           `yaml:"min_size"`
	MaxSize         float64           `yaml:"max_size"`
	Speed           float64           `yaml:"speed"`
	MaxPixelRatio   float64           `yaml:"max_pixel_ratio"`
	Parallax        float64           `yaml:"parallax"`
	RingProbability float64           `yaml:"ring_probability"`
	Palettes        []planets.Palette `yaml:"palettes,omitempty"`
	Background      [2]string         `yaml:"background"`
	ReducedMotion   string            `yaml:"reduced_motion"`
	Pointer         string            `yaml:"pointer"`
	FPS             int               `yaml:"fps"`
	Width           int               `yaml:"width"`
	Height          int               `yaml:"height"`
	Seed            int64             `yaml:"seed,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:           DefaultCount,
		MinSize:         DefaultMinSize,
		MaxSize:         DefaultMaxSize,
		Speed:           DefaultSpeed,
		MaxPixelRatio:   surface.DefaultMaxRatio,
		Parallax:        render.DefaultParallax,
		RingProbability: planets.RingProbability,
		Background:      render.DefaultBackground,
		ReducedMotion:   Auto,
		Pointer:         Auto,
		FPS:             DefaultFPS,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys absent from the file
// keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Palettes = append([]planets.Palette(nil), base.Palettes...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the layer relies on.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return planets.ErrInvalidCount
	}
	if err := planets.ValidateBounds(c.MinSize, c.MaxSize, c.Speed); err != nil {
		return err
	}
	if c.Palettes != nil && len(c.Palettes) == 0 {
		return planets.ErrNoPalettes
	}
	for i, p := range c.Palettes {
		for _, entry := range p {
			if _, err := render.ParseColor(render.WithAlpha(entry, 1)); err != nil {
				return fmt.Errorf("palette %d: %w", i, err)
			}
		}
	}
	for _, entry := range c.Background {
		if _, err := render.ParseColor(render.WithAlpha(entry, 1)); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	switch c.ReducedMotion {
	case Auto, On, Off:
	default:
		return fmt.Errorf("reduced_motion: unknown value %q (want auto, on or off)", c.ReducedMotion)
	}
	switch c.Pointer {
	case Auto, Fine, Coarse:
	default:
		return fmt.Errorf("pointer: unknown value %q (want auto, fine or coarse)", c.Pointer)
	}
	return nil
}

// SameShape reports whether o would produce the same body population. A
// change to count, size bounds or speed means the layer must be rebuilt.
func (c *Config) SameShape(o *Config) bool {
	return c.Count == o.Count &&
		c.MinSize == o.MinSize &&
		c.MaxSize == o.MaxSize &&
		c.Speed == o.Speed
}

// PaletteSet returns the configured palettes or the built-in set.
func (c *Config) PaletteSet() []planets.Palette {
	if len(c.Palettes) == 0 {
		return planets.DefaultPalettes()
	}
	return c.Palettes
}

// RenderOptions maps the config onto renderer settings.
func (c *Config) RenderOptions() render.Options {
	return render.Options{Parallax: c.Parallax, Background: c.Background}
}

// ResolveReducedMotion applies the reduced_motion setting to what the host detected.
func (c *Config) ResolveReducedMotion(detected bool) bool {
	switch c.ReducedMotion {
	case On:
		return true
	case Off:
		return false
	}
	return detected
}

// ResolveCoarsePointer applies the pointer setting to what the host detected.
func (c *Config) ResolveCoarsePointer(detected bool) bool {
	switch c.Pointer {
	case Coarse:
		return true
	case Fine:
		return false
	}
	return detected
}

// TouchPlatform reports whether the build targets a touch-first OS.
func TouchPlatform() bool {
	return runtime.GOOS == "android" || runtime.GOOS == "ios"
}
