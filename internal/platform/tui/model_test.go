package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fallingsky/internal/config"
	"github.com/vovakirdan/fallingsky/internal/core"
	"github.com/vovakirdan/fallingsky/internal/games/fallingsky"
	"github.com/vovakirdan/fallingsky/internal/storage"
)

func testConfig(name string) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  32,
		TickRate: 60,
		Seed:     7,
		Profile:  core.DefaultProfile(name),
	}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(store *storage.Store) GameModel {
	game := fallingsky.NewWithConfig(fallingsky.ModeClassic, config.DefaultFallingSkyConfig())
	m := NewGameModel(game, store, testConfig("ann"), nil)
	m.Init()
	return m
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	if next == nil {
		t.Fatal("Update returned nil model")
	}
	return next, cmd
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(nil)

	if _, cmd := m.Update(TickMsg{Loop: m.loop + 1}); cmd != nil {
		t.Error("Expected a tick from another loop to be dropped")
	}
	if _, cmd := m.Update(TickMsg{Loop: m.loop}); cmd == nil {
		t.Error("Expected the next tick to be scheduled")
	}
}

func TestGameModelQuitSettlesRound(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(store)

	next, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	gm := next.(GameModel)
	if !gm.IsQuitting() || cmd == nil {
		t.Fatal("Expected Esc to quit a standalone game")
	}
	if p := gm.Profile(); p.Losses != 1 {
		t.Errorf("Expected the abandoned round to count as a loss, got %+v", p)
	}

	saved, err := store.LoadProfile("ann")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if saved.Losses != 1 {
		t.Errorf("Expected saved profile with 1 loss, got %+v", saved)
	}

	// A second quit must not settle or save again.
	gm.leave()
	if saved, _ = store.LoadProfile("ann"); saved.Losses != 1 {
		t.Errorf("Expected still 1 loss, got %d", saved.Losses)
	}
	if scores, _ := store.TopScores("classic", 10); len(scores) != 0 {
		t.Errorf("Expected no score row for an empty round, got %v", scores)
	}
}

func TestGameModelEmbeddedEscReturnsToMenu(t *testing.T) {
	m := newTestModel(nil)
	m.embedded = true

	next, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	gm := next.(GameModel)
	if !gm.BackToMenu() || gm.IsQuitting() {
		t.Error("Expected Esc to return to the menu")
	}
	if cmd != nil {
		t.Error("Expected no quit command from an embedded game")
	}
	if _, cmd = gm.Update(TickMsg{Loop: gm.loop}); cmd != nil {
		t.Error("Expected the tick loop to stop after leaving")
	}
}

func TestGameModelPersistsScore(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(store)
	m.gameState = core.GameState{Score: 2500, Lines: 2, GameOver: true}

	m.persist()
	m.persist()

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected exactly one saved score, got %d", len(scores))
	}
	if scores[0].Player != "ann" || scores[0].Score != 2500 || scores[0].Lines != 2 {
		t.Errorf("Unexpected score row: %+v", scores[0])
	}
}

func TestGameModelViewDrawsBoard(t *testing.T) {
	m := newTestModel(nil)
	m.Update(runeKey("a"))
	next, _ := m.Update(TickMsg{Loop: m.loop})

	view := next.(GameModel).View()
	if !strings.Contains(view, "NEXT") || !strings.Contains(view, "HOLD") {
		t.Error("Expected the queue and hold labels in the view")
	}
}
