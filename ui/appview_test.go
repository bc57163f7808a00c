package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"domatui/audio"
	"domatui/config"
	"domatui/generation/testutil"
	"domatui/session"
	"domatui/storage"
)

func newTestApp(t *testing.T) AppView {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	history := storage.NewHistoryStore(store)
	if err := history.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	coordinator := session.NewCoordinator(history, testutil.NewMockGenerator())
	t.Cleanup(coordinator.Close)

	recorder := audio.NewRecorder(audio.NewController(audio.DefaultCommandOpener()))
	a := NewAppView(&config.Config{}, coordinator, history, recorder, "v9.9.9")

	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(AppView)
}

func TestHeaderShowsVersion(t *testing.T) {
	a := newTestApp(t)

	if !strings.Contains(a.renderHeader(), "v9.9.9") {
		t.Errorf("header missing version: %q", a.renderHeader())
	}
}

func TestChatKeysScrollViewport(t *testing.T) {
	a := newTestApp(t)

	a.viewport.SetContent(strings.Repeat("line\n", 200))
	a.viewport.GotoBottom()
	bottom := a.viewport.YOffset
	if bottom == 0 {
		t.Fatal("viewport content too short to exercise scrolling")
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	a = m.(AppView)
	afterPgUp := a.viewport.YOffset
	if afterPgUp >= bottom {
		t.Fatalf("pgup did not scroll up: offset %d, was %d", afterPgUp, bottom)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}, Alt: true})
	a = m.(AppView)
	if a.viewport.YOffset > afterPgUp {
		t.Fatalf("alt+k moved viewport down: offset %d, was %d", a.viewport.YOffset, afterPgUp)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	a = m.(AppView)
	if a.viewport.YOffset <= afterPgUp && afterPgUp != 0 {
		t.Fatalf("pgdown did not scroll down: offset %d", a.viewport.YOffset)
	}
}

func TestTypedRunesStillReachTextarea(t *testing.T) {
	a := newTestApp(t)

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	a = m.(AppView)
	if got := a.textarea.Value(); got != "hello" {
		t.Errorf("textarea value = %q, want %q", got, "hello")
	}
}
