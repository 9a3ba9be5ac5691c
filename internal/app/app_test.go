package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", next)
	}
	return am, cmd
}

func testOptions() Options {
	return Options{
		Config:      duel.DefaultConfig(),
		Rand:        duel.NewRand(7),
		SkipWelcome: true,
	}
}

func TestStartGameAndGoBack(t *testing.T) {
	m := newAppModel(testOptions())
	if got := m.router.Active().Title(); got != "Home" {
		t.Fatalf("active = %q, want Home", got)
	}

	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("starting a game should navigate")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 2 || m.router.Active().Title() != "Pregame" {
		t.Fatalf("depth %d active %q, want 2 Pregame", m.router.Depth(), m.router.Active().Title())
	}

	m, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d after esc, want 1", m.router.Depth())
	}
}

func TestEscAtHomeIsNoop(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the bottom screen should do nothing")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestViewRendersFrame(t *testing.T) {
	m := newAppModel(testOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if !m.View().AltScreen {
		t.Error("view should use the alt screen")
	}
	frame := m.render()
	if !strings.Contains(frame, "Knowduel") || !strings.Contains(frame, "Home") {
		t.Error("frame should show the app name and screen title")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "more room") {
		t.Error("small terminal should show the resize message")
	}
}

func TestCustomCatalogEntry(t *testing.T) {
	opts := testOptions()
	opts.Catalog = catalog.NewMemory()
	opts.CatalogName = "quiz.yaml"

	got := entries(opts)
	if len(got) != 1 || got[0].Label != "QUIZ.YAML" {
		t.Errorf("entries() = %+v, want one QUIZ.YAML entry", got)
	}
}

func TestEntriesRestrictedModes(t *testing.T) {
	opts := testOptions()
	opts.Modes = []catalog.Mode{catalog.ModeEducation}

	got := entries(opts)
	if len(got) != 1 || got[0].Mode != catalog.ModeEducation {
		t.Errorf("entries() = %+v, want education only", got)
	}
}
