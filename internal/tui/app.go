package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/layer"
	"github.com/san-kum/planetfield/internal/logging"
)

var (
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

type tickMsg time.Time

type model struct {
	term    *Terminal
	layer   *layer.Layer
	fps     int
	mounted bool
	err     error

	presets []string
	preset  int
	showHUD bool
}

// NewModel returns a bubbletea model that mounts a layer for cfg once the
// terminal size is known.
func NewModel(cfg *config.Config, prefs host.Preferences, opts ...layer.Option) *model {
	term := &Terminal{Base: host.Base{Prefs: prefs}}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return &model{
		term:    term,
		layer:   layer.New(term, cfg, opts...),
		fps:     fps,
		presets: config.ListPresets(),
		preset:  -1,
		showHUD: true,
	}
}

func (m *model) Init() tea.Cmd { return m.tick() }

func (m *model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.layer.Unmount()
			return m, tea.Quit
		case "p":
			m.nextPreset()
		case "h":
			m.showHUD = !m.showHUD
		}
	case tea.WindowSizeMsg:
		// last row is the status line
		rows := max(msg.Height-1, 0)
		changed := m.term.SetSize(msg.Width, rows)
		switch {
		case !m.mounted:
			m.mounted = true
			return m, m.mount()
		case changed && m.layer.Active():
			m.term.EmitResize()
		case changed:
			// a layer mounted on an empty terminal is inert and has no
			// resize listener
			m.layer.Unmount()
			return m, m.mount()
		}
	case tea.MouseMsg:
		x, y := CellPoint(msg.X, msg.Y)
		m.term.EmitPointer(x, y)
	case tickMsg:
		m.term.Tick()
		return m, m.tick()
	}
	return m, nil
}

func (m *model) mount() tea.Cmd {
	if err := m.layer.Mount(); err != nil {
		m.err = err
		return tea.Quit
	}
	return nil
}

func (m *model) nextPreset() {
	m.preset = (m.preset + 1) % len(m.presets)
	name := m.presets[m.preset]
	if err := m.layer.Reconfigure(config.GetPreset(name)); err != nil {
		logging.Logger().Warn("preset rejected", "preset", name, "err", err)
	}
}

func (m *model) View() string {
	frame := m.term.Frame()
	if !m.showHUD {
		return frame
	}
	preset := "custom"
	if m.preset >= 0 {
		preset = m.presets[m.preset]
	}
	status := white.Render("planetfield") + dim.Render(fmt.Sprintf(" :: %s  %d frames  [p] preset  [h] hud  [q] quit", preset, m.layer.Frames()))
	if frame == "" {
		return status
	}
	return frame + "\n" + status
}

// Run starts the terminal preview and blocks until the user quits.
func Run(cfg *config.Config, prefs host.Preferences, opts ...layer.Option) error {
	m := NewModel(cfg, prefs, opts...)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return m.err
}
