package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	_ "github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func update(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	if len(m.items) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(m.items))
	}
	if m.items[0].GameID != "blockfall" || m.items[1].GameID != "blockfall_classic" {
		t.Errorf("unexpected order: %q, %q", m.items[0].GameID, m.items[1].GameID)
	}

	view := m.View()
	for _, want := range []string{"Blockfall", "Blockfall (Classic)", "normal"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func TestMenuPresetCycling(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	if m.Preset() != config.DifficultyNormal {
		t.Fatalf("default preset is %q", m.Preset())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyHard {
		t.Errorf("expected hard, got %q", m.Preset())
	}

	for range 2 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m = next.(MenuModel)
	}
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("expected easy, got %q", m.Preset())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyClassic {
		t.Errorf("expected wrap to classic, got %q", m.Preset())
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first item: %d", m.cursor)
	}

	for range 5 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(MenuModel)
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor moved past the last item: %d", m.cursor)
	}
}

func TestSessionStartsGameAndReturns(t *testing.T) {
	m := NewSessionModel(nil, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeGame || m.gameModel == nil {
		t.Fatalf("expected game mode, got %v", m.mode)
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}
	if m.gameModel.game.ID() != "blockfall_classic" {
		t.Errorf("started %q", m.gameModel.game.ID())
	}

	// Back is ignored while the game runs
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg{})
	if m.mode != modeGame {
		t.Fatal("left the game while it was running")
	}

	m, _ = update(t, m, runeKey("p"))
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMenu || m.gameModel != nil {
		t.Errorf("expected menu after back from pause, got %v", m.mode)
	}
	if m.quitting {
		t.Error("returning to the menu must not quit")
	}
}

func TestSessionAppliesMenuPreset(t *testing.T) {
	m := NewSessionModel(nil, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeGame {
		t.Fatal("expected game mode")
	}

	type presetReader interface{ DebugState() string }
	g, ok := m.gameModel.game.(presetReader)
	if !ok {
		t.Fatalf("unexpected game type %T", m.gameModel.game)
	}
	if !strings.Contains(g.DebugState(), "Preset: hard") {
		t.Errorf("preset not applied: %s", g.DebugState())
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.mode != modeScores || m.scores == nil {
		t.Fatalf("expected scoreboard, got %v", m.mode)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMenu || m.quitting {
		t.Errorf("expected menu after back, got %v", m.mode)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig())

	m, cmd := update(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestClassicRunSavedOnLeave(t *testing.T) {
	store := openStore(t)
	game, err := registry.Create("blockfall_classic")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m := NewGameModel(game, store, testConfig())
	m.Init()
	for range 3 {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		m = tick(t, m)
	}

	m, _ = press(t, m, runeKey("p"))
	m = tick(t, m)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("back while paused should return to the menu")
	}

	runs, err := store.RecentRuns("blockfall_classic", 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 classic run, got %d", len(runs))
	}
	if rec := runs[0].Record; rec.Rules != "classic" || rec.Steps != 3 || rec.Inputs != "LLL" {
		t.Errorf("unexpected record %+v", rec)
	}
}
