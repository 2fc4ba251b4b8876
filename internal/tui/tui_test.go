package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/layer"
)

func newTestModel() *model {
	return NewModel(config.DefaultConfig(), host.Preferences{}, layer.WithRand(rand.New(rand.NewSource(3))))
}

func TestTerminalViewport(t *testing.T) {
	term := &Terminal{}
	if _, err := term.AcquireSurface(); err == nil {
		t.Error("expected no surface before the size is known")
	}

	term.SetSize(40, 10)
	w, h := term.Viewport()
	if w != 320 || h != 160 {
		t.Errorf("expected 320x160 logical pixels, got %vx%v", w, h)
	}
	if term.SetSize(40, 10) {
		t.Error("same size should not report a change")
	}
}

func TestCellPoint(t *testing.T) {
	x, y := CellPoint(2, 3)
	if x != 20 || y != 56 {
		t.Errorf("expected (20, 56), got (%v, %v)", x, y)
	}
}

func TestModelMountsOnFirstSize(t *testing.T) {
	m := newTestModel()
	if m.layer.Mounted() {
		t.Fatal("layer should wait for the terminal size")
	}

	m.Update(tea.WindowSizeMsg{Width: 20, Height: 7})
	if !m.layer.Active() {
		t.Fatal("expected an active layer")
	}

	s := m.layer.Surface()
	if s.BufferWidth != 20 || s.BufferHeight != 12 {
		t.Errorf("expected a 20x12 buffer, got %dx%d", s.BufferWidth, s.BufferHeight)
	}
}

func TestModelRendersHalfBlocks(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 7})
	m.Update(tickMsg{})

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 6 frame rows and a status line, got %d lines", len(lines))
	}
	if strings.Count(view, upperHalf) != 20*6 {
		t.Errorf("expected %d half blocks, got %d", 20*6, strings.Count(view, upperHalf))
	}
	if m.layer.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", m.layer.Frames())
	}
}

func TestModelForwardsMouse(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 7})
	m.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})

	p := m.layer.Pointer()
	if p.X != 12 || p.Y != 24 {
		t.Errorf("expected pointer (12, 24), got (%v, %v)", p.X, p.Y)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 7})
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 11})

	s := m.layer.Surface()
	if s.BufferWidth != 30 || s.BufferHeight != 20 {
		t.Errorf("expected a 30x20 buffer, got %dx%d", s.BufferWidth, s.BufferHeight)
	}
}

func TestModelRecoversFromEmptyTerminal(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 1})
	if !m.layer.Mounted() || m.layer.Active() {
		t.Fatal("expected an inert layer on a terminal with no frame rows")
	}

	m.Update(tea.WindowSizeMsg{Width: 20, Height: 7})
	if !m.layer.Active() {
		t.Fatal("expected the layer to come up once the terminal has room")
	}
	s := m.layer.Surface()
	if s.BufferWidth != 20 || s.BufferHeight != 12 {
		t.Errorf("expected a 20x12 buffer, got %dx%d", s.BufferWidth, s.BufferHeight)
	}

	m.Update(tickMsg{})
	if m.layer.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", m.layer.Frames())
	}
}

func TestModelQuitUnmounts(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 7})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.layer.Mounted() {
		t.Error("expected the layer to be unmounted")
	}
	if m.term.ActiveListeners() != 0 || m.term.PendingFrames() != 0 {
		t.Error("expected host callbacks to be released")
	}
}
