// Package gui runs the planets layer in a raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/layer"
	"github.com/san-kum/planetfield/internal/logging"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type App struct {
	Win     *Window
	Layer   *layer.Layer
	Presets []string
	Preset  int
	ShowHUD bool
}

// initWindow opens a resizable high-DPI window and sets the refresh rate.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "planetfield")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// Run opens the window, mounts a layer for cfg and blocks until the window
// is closed.
func Run(cfg *config.Config, prefs host.Preferences, opts ...layer.Option) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	win := newWindow(prefs)
	defer win.unload()

	app := &App{
		Win:     win,
		Layer:   layer.New(win, cfg, opts...),
		Presets: config.ListPresets(),
		Preset:  -1,
	}
	if err := app.Layer.Mount(); err != nil {
		return err
	}
	defer app.Layer.Unmount()

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.nextPreset()
	}
	a.Win.Pump()
}

// nextPreset cycles through the built-in presets.
func (a *App) nextPreset() {
	a.Preset = (a.Preset + 1) % len(a.Presets)
	name := a.Presets[a.Preset]
	if err := a.Layer.Reconfigure(config.GetPreset(name)); err != nil {
		logging.Logger().Warn("preset rejected", "preset", name, "err", err)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.Win.Draw()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	preset := "custom"
	if a.Preset >= 0 {
		preset = a.Presets[a.Preset]
	}
	s := a.Layer.Surface()
	rl.DrawText(fmt.Sprintf("planetfield :: %s", preset), 20, 20, 16, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS  %dx%d @%.2gx", rl.GetFPS(), s.BufferWidth, s.BufferHeight, s.Ratio), 20, 42, 14, ColTextDim)
	rl.DrawText("[P] PRESET  [H] HUD  [Q] QUIT", 20, int32(rl.GetScreenHeight())-30, 14, ColTextDim)
}
