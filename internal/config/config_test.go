package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/planetfield/internal/planets"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Count != 6 {
		t.Errorf("expected count 6, got %d", cfg.Count)
	}
	if cfg.MinSize != 60 || cfg.MaxSize != 180 {
		t.Errorf("expected sizes 60/180, got %f/%f", cfg.MinSize, cfg.MaxSize)
	}
	if cfg.Speed != 0.06 {
		t.Errorf("expected speed 0.06, got %f", cfg.Speed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("calm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Count != 4 {
		t.Errorf("expected count 4, got %d", cfg.Count)
	}

	cfg.Count = 99
	if Presets["calm"].Count != 4 {
		t.Error("GetPreset must return a copy")
	}
	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planets.yaml")
	cfg := DefaultConfig()
	cfg.Count = 9
	cfg.Palettes = []planets.Palette{{"#fff", "#888", "#111", "rgba(17,17,17,0)"}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Count != 9 || len(got.Palettes) != 1 || got.Palettes[0] != cfg.Palettes[0] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("count: 10\nspeed: 0.1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Count != 10 || cfg.Speed != 0.1 || cfg.MaxSize != DefaultMaxSize {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("count: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("drift")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Count != 9 {
		t.Errorf("expected count 9 from the file, got %d", cfg.Count)
	}
	if cfg.Speed != 0.2 || cfg.Parallax != 24 {
		t.Errorf("expected preset speed and parallax to survive, got %f/%f", cfg.Speed, cfg.Parallax)
	}
	if base.Count != DefaultCount {
		t.Error("LoadOver must not modify its base")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("min_size: 200\nmax_size: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, planets.ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"negative speed", func(c *Config) { c.Speed = -0.1 }},
		{"bad palette", func(c *Config) { c.Palettes = []planets.Palette{{"#fff", "blue", "#000", "#000"}} }},
		{"empty palettes", func(c *Config) { c.Palettes = []planets.Palette{} }},
		{"bad background", func(c *Config) { c.Background[0] = "dark" }},
		{"bad reduced motion", func(c *Config) { c.ReducedMotion = "maybe" }},
		{"bad pointer", func(c *Config) { c.Pointer = "pen" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSameShape(t *testing.T) {
	a, b := DefaultConfig(), DefaultConfig()
	b.Parallax = 30
	b.Palettes = []planets.Palette{{"#fff", "#fff", "#fff", "#fff"}}
	if !a.SameShape(b) {
		t.Error("parallax and palettes do not change the population")
	}

	b.MaxSize = 200
	if a.SameShape(b) {
		t.Error("size bounds change the population")
	}
}

func TestResolvePreferences(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.ResolveReducedMotion(true) || cfg.ResolveReducedMotion(false) {
		t.Error("auto should follow detection")
	}
	cfg.ReducedMotion = On
	if !cfg.ResolveReducedMotion(false) {
		t.Error("on should force reduced motion")
	}
	cfg.Pointer = Fine
	if cfg.ResolveCoarsePointer(true) {
		t.Error("fine should override coarse detection")
	}
	cfg.Pointer = Coarse
	if !cfg.ResolveCoarsePointer(false) {
		t.Error("coarse should force coarse")
	}
}
