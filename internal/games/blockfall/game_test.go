package blockfall

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/replay"
)

const testConfig = `
rules:
  death_on_blocked_spawn: true
  lock_delay: 1
  clear_lines: true
timing:
  gravity_every_ticks: 10
  min_gravity_ticks: 2
difficulty:
  enabled: false
`

// useTestConfig points the package at a config file for the test's duration.
func useTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func newGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	useTestConfig(t)
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"blockfall", "blockfall_classic"} {
		info, ok := registry.Info(id)
		if !ok {
			t.Fatalf("%s is not registered", id)
		}
		if !info.Replayable {
			t.Errorf("%s should be replayable", id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, New(), 12345)
	g2 := newGame(t, New(), 12345)

	script := []core.Action{core.ActionLeft, core.ActionNone, core.ActionRotateCW, core.ActionDrop, core.ActionRight}
	for i := 0; i < 300; i++ {
		in := frame(script[i%len(script)])
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", s1, s2)
	}
}

func TestGravityTimer(t *testing.T) {
	g := newGame(t, New(), 1)
	startY := g.Snapshot().Y

	for i := 0; i < 9; i++ {
		if res := g.Step(frame()); res.Stepped {
			t.Fatalf("Idle tick %d should not step", i+1)
		}
	}
	res := g.Step(frame())
	if !res.Stepped {
		t.Fatal("Tenth idle tick should apply gravity")
	}
	if got := g.Snapshot().Y; got != startY+1 {
		t.Errorf("Y after gravity = %d, expected %d", got, startY+1)
	}
}

func TestInputStepsImmediately(t *testing.T) {
	g := newGame(t, New(), 1)
	before := g.Snapshot()

	res := g.Step(frame(core.ActionLeft))
	if !res.Stepped {
		t.Fatal("Left should consume a step")
	}

	after := g.Snapshot()
	if after.X != before.X-1 || after.Y != before.Y+1 {
		t.Errorf("Position after Left = (%d,%d), expected (%d,%d)", after.X, after.Y, before.X-1, before.Y+1)
	}
	if after.Steps != 1 {
		t.Errorf("Steps = %d, expected 1", after.Steps)
	}

	// A player step restarts the gravity timer
	for i := 0; i < 9; i++ {
		if g.Step(frame()).Stepped {
			t.Fatalf("Idle tick %d after input should not step", i+1)
		}
	}
}

func TestDropPlacesPiece(t *testing.T) {
	g := newGame(t, New(), 1)
	before := g.Snapshot()

	g.Step(frame(core.ActionDrop, core.ActionLeft))

	after := g.Snapshot()
	if after.Filled != 4 {
		t.Errorf("Filled = %d after drop, expected 4", after.Filled)
	}
	if after.Piece != before.Next {
		t.Errorf("Active piece = %s, expected previous next %s", after.Piece, before.Next)
	}
	if after.Y != 0 {
		t.Errorf("New piece Y = %d, expected 0", after.Y)
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newGame(t, New(), 1)
	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	before := g.Snapshot()
	for i := 0; i < 50; i++ {
		g.Step(frame(core.ActionLeft))
	}
	after := g.Snapshot()
	if after.Steps != before.Steps || after.X != before.X || after.Y != before.Y {
		t.Error("Paused game should not step")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("Second pause should resume")
	}
}

func playUntilDead(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionDrop))
	}
	if !g.State().GameOver {
		t.Fatal("Dropping in place should top out")
	}
}

func TestDeathAndRestart(t *testing.T) {
	g := newGame(t, New(), 3)
	playUntilDead(t, g)

	if g.Snapshot().State != StateDead {
		t.Errorf("State = %s, expected dead", g.Snapshot().State)
	}

	dead := g.Snapshot()
	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionPause))
	if got := g.Snapshot(); got.Steps != dead.Steps || got.State != StateDead {
		t.Error("Dead game should ignore input")
	}

	g.Step(frame(core.ActionRestart))
	after := g.Snapshot()
	if after.State != StatePlaying || after.Steps != 0 || after.Filled != 0 {
		t.Errorf("Restart should start a fresh game, got %+v", after)
	}
}

func TestRecordReplays(t *testing.T) {
	g := newGame(t, New(), 99)
	script := []core.Action{core.ActionRotateCW, core.ActionNone, core.ActionLeft, core.ActionLeft, core.ActionDrop,
		core.ActionRight, core.ActionNone, core.ActionNone, core.ActionRotateCCW, core.ActionDrop, core.ActionSoftDrop}
	for i := 0; i < 400; i++ {
		g.Step(frame(script[i%len(script)]))
	}

	rec := g.Record()
	if rec.GameID != "blockfall" || rec.Seed != 99 || rec.Steps != len(rec.Inputs) {
		t.Fatalf("Record() = %+v", rec)
	}

	inputs, err := replay.Parse(rec.Inputs)
	if err != nil {
		t.Fatalf("Parse(recorded inputs) error: %v", err)
	}
	rules, err := replay.ParseRules(rec.Rules)
	if err != nil {
		t.Fatalf("ParseRules(%q) error: %v", rec.Rules, err)
	}

	res := replay.Run(rules, uint32(rec.Seed), inputs)
	if !res.Final.Equal(g.Current()) {
		t.Errorf("Replayed state differs from live state:\n%s\n---\n%s",
			replay.Format(res.Final), replay.Format(g.Current()))
	}
	if int(res.Final.Score) != rec.Score {
		t.Errorf("Replayed score = %d, recorded %d", res.Final.Score, rec.Score)
	}
}

func TestClassicVariant(t *testing.T) {
	g := newGame(t, NewClassic(), 1)

	if g.Current().Rules != bfcore.DefaultRules() {
		t.Errorf("Classic rules = %+v, expected all off", g.Current().Rules)
	}
	if g.Record().Rules != "classic" {
		t.Errorf("Record().Rules = %q, expected classic", g.Record().Rules)
	}

	// Without death on spawn the game never ends
	for i := 0; i < 100; i++ {
		g.Step(frame(core.ActionDrop))
	}
	if g.State().GameOver {
		t.Error("Classic variant should never end")
	}
}

func TestConfigSeedWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeded.yaml")
	if err := os.WriteFile(path, []byte("seed: 4242\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	if g.Record().Seed != 4242 {
		t.Errorf("Seed = %d, expected pinned 4242", g.Record().Seed)
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	if err := SetDifficultyPreset("nightmare"); err == nil {
		t.Error("Unknown preset should be rejected")
	}
	if err := SetDifficultyPreset("classic"); err != nil {
		t.Fatalf("SetDifficultyPreset(classic) error: %v", err)
	}
	defer SetDifficultyPreset("") //nolint:errcheck // empty preset is always valid

	g := newGame(t, New(), 1)
	if g.Current().Rules != bfcore.DefaultRules() {
		t.Error("Classic preset should disable rules on the arcade variant")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, New(), 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := strings.SplitN(screen.String(), "\n", 2)[0]
	if !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD = %q, expected score", hud)
	}

	gridW := bfcore.WorldWidth + 2 + bfcore.PanelWidth
	ox := (80 - gridW) / 2
	if r := screen.GetCell(ox, hudHeight).Rune; r != '+' {
		t.Errorf("Border corner = %q, expected '+'", r)
	}

	// The active piece is drawn in its own color
	p := g.Current().Position
	cell := screen.GetCell(ox+1+p.X, hudHeight+1+p.Y)
	if cell.Rune != '#' || cell.Color == core.ColorDefault {
		t.Errorf("Active piece cell = %+v, expected colored '#'", cell)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, New(), 1)
	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Small screen should show the too-small overlay")
	}
}

func TestRenderDeadOverlay(t *testing.T) {
	g := newGame(t, New(), 3)
	playUntilDead(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You Are Dead") {
		t.Error("Dead game should show the death overlay")
	}
}

func TestInstancePresetOverridesPackage(t *testing.T) {
	g := New()
	if err := g.SetPreset("classic"); err != nil {
		t.Fatalf("SetPreset() error: %v", err)
	}
	g = newGame(t, g, 1)

	if g.Current().Rules != bfcore.DefaultRules() {
		t.Error("Instance classic preset should disable rules")
	}
	if _, ok := registry.Game(g).(registry.Tunable); !ok {
		t.Error("Game should be tunable")
	}
}

func TestPiecesCounted(t *testing.T) {
	g := newGame(t, New(), 12345)
	for i := 0; i < 3; i++ {
		g.Step(frame(core.ActionDrop))
	}

	snap := g.Snapshot()
	if snap.Pieces != 3 {
		t.Errorf("Pieces = %d, expected 3", snap.Pieces)
	}
	if !strings.Contains(g.DebugState(), "Pieces: 3") {
		t.Errorf("DebugState missing piece count:\n%s", g.DebugState())
	}

	g.Reset(core.RuntimeConfig{Seed: 1})
	if g.Snapshot().Pieces != 0 {
		t.Error("Reset should clear the piece count")
	}
}

func TestMapInput(t *testing.T) {
	frame := func(actions ...core.Action) core.InputFrame {
		f := core.NewInputFrame()
		for _, a := range actions {
			f.Set(a)
		}
		return f
	}

	tests := []struct {
		name  string
		frame core.InputFrame
		input bfcore.Input
		ok    bool
	}{
		{"empty", frame(), bfcore.InputOther, false},
		{"zero value", core.InputFrame{}, bfcore.InputOther, false},
		{"pause only", frame(core.ActionPause), bfcore.InputOther, false},
		{"left", frame(core.ActionLeft), bfcore.InputLeft, true},
		{"soft drop", frame(core.ActionSoftDrop), bfcore.InputOther, true},
		{"drop wins", frame(core.ActionLeft, core.ActionRotateCW, core.ActionDrop), bfcore.InputUp, true},
		{"rotation over shift", frame(core.ActionRight, core.ActionRotateCCW), bfcore.InputLRot, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, ok := mapInput(tc.frame)
			if in != tc.input || ok != tc.ok {
				t.Errorf("mapInput() = %v, %v, expected %v, %v", in, ok, tc.input, tc.ok)
			}
		})
	}
}
