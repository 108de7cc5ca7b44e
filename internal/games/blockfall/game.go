// Package blockfall adapts the pure blockfall state machine to the
// platform's tick loop: key actions become discrete steps, a gravity timer
// injects idle steps, and every consumed input is recorded for replay.
package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/replay"
)

// Variant identifies a registered ruleset.
type Variant string

const (
	// VariantArcade uses the rules from the loaded config.
	VariantArcade Variant = "blockfall"
	// VariantClassic has every optional rule off: pieces lock only on hard
	// drop, nothing is cleared, and a blocked spawn does not end the game.
	VariantClassic Variant = "blockfall_classic"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by the next Reset.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// Game implements registry.Game for one blockfall variant.
type Game struct {
	variant    Variant
	preset     config.DifficultyPreset // Overrides the package-level preset when set
	cfg        config.BlockfallConfig
	difficulty *config.DifficultyManager

	state  bfcore.State
	seed   uint32
	inputs []bfcore.Input
	pieces int // Pieces locked so far

	tick          uint64
	gravityTicker int
	paused        bool

	screenW int
	screenH int
}

// New creates a game using the rules from the loaded config.
func New() *Game {
	return &Game{variant: VariantArcade}
}

// NewClassic creates a game with every optional rule disabled.
func NewClassic() *Game {
	return &Game{variant: VariantClassic}
}

func init() {
	registry.Register(string(VariantArcade), func() registry.Game {
		return New()
	})
	registry.Register(string(VariantClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Blockfall (Classic)"
	}
	return "Blockfall"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.variant == VariantClassic {
		return "No line clears, no lock delay, pieces lock on hard drop only"
	}
	return "Line clears, lock delay, game over when the stack reaches the top"
}

// SetPreset selects the difficulty preset for this instance only.
func (g *Game) SetPreset(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadBlockfall(configPath)
	if err != nil {
		cfg = config.DefaultBlockfallConfig()
	}
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	config.ApplyPreset(&cfg, preset)
	if g.variant == VariantClassic {
		config.ApplyPreset(&cfg, config.DifficultyClassic)
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.seed = pickSeed(cfg.Seed, rc.Seed)
	g.state = bfcore.NewState(g.rules(), g.seed)
	g.inputs = g.inputs[:0]
	g.pieces = 0
	g.tick = 0
	g.gravityTicker = 0
	g.paused = false
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
}

// pickSeed prefers a seed pinned in config, then the platform's seed.
func pickSeed(cfgSeed uint32, rcSeed int64) uint32 {
	switch {
	case cfgSeed != 0:
		return cfgSeed
	case rcSeed != 0:
		return uint32(rcSeed)
	default:
		return bfcore.InitialSeed
	}
}

func (g *Game) rules() bfcore.Rules {
	return bfcore.Rules{
		DeathOnBlockedSpawn: g.cfg.Rules.DeathOnBlockedSpawn,
		LockDelay:           g.cfg.Rules.LockDelay,
		ClearLines:          g.cfg.Rules.ClearLines,
	}
}

// Step advances the game by one tick. A tick consumes at most one game step:
// either the player's input or, when the gravity timer expires, an idle step.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.state.IsDead() {
		g.Reset(core.RuntimeConfig{
			Seed:    int64(g.state.Generator.Advance().Value()),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.state.IsDead() {
		g.paused = !g.paused
	}

	if g.state.IsDead() || g.paused {
		return core.StepResult{State: g.State()}
	}

	if in, ok := mapInput(input); ok {
		g.apply(in)
		g.gravityTicker = 0
		return core.StepResult{State: g.State(), Stepped: true}
	}

	g.gravityTicker++
	if g.gravityTicker >= g.GravityInterval() {
		g.gravityTicker = 0
		g.apply(bfcore.InputOther)
		return core.StepResult{State: g.State(), Stepped: true}
	}

	return core.StepResult{State: g.State()}
}

// mapInput picks the single game input for a frame. Drop wins over
// rotation, rotation over shifting.
func mapInput(input core.InputFrame) (bfcore.Input, bool) {
	if input.Empty() {
		return bfcore.InputOther, false
	}

	switch {
	case input.Has(core.ActionDrop):
		return bfcore.InputUp, true
	case input.Has(core.ActionRotateCW):
		return bfcore.InputRRot, true
	case input.Has(core.ActionRotateCCW):
		return bfcore.InputLRot, true
	case input.Has(core.ActionLeft):
		return bfcore.InputLeft, true
	case input.Has(core.ActionRight):
		return bfcore.InputRight, true
	case input.Has(core.ActionSoftDrop):
		return bfcore.InputOther, true
	default:
		return bfcore.InputOther, false
	}
}

func (g *Game) apply(in bfcore.Input) {
	next := bfcore.Step(in, g.state)
	if next.Generator != g.state.Generator {
		g.pieces++
	}
	g.state = next
	g.inputs = append(g.inputs, in)
}

// GravityInterval returns the current number of ticks between idle steps.
func (g *Game) GravityInterval() int {
	return g.difficulty.GravityInterval(g.cfg.Timing, config.Progress{
		Score:  int(g.state.Score),
		Ticks:  int(g.tick),
		Pieces: g.pieces,
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.state.Score),
		GameOver: g.state.IsDead(),
		Paused:   g.paused,
	}
}

// Current returns the underlying state machine value.
func (g *Game) Current() bfcore.State {
	return g.state
}

// Record returns everything needed to replay the current run.
func (g *Game) Record() core.RunRecord {
	return core.RunRecord{
		GameID: g.ID(),
		Seed:   int64(g.seed),
		Rules:  replay.FormatRules(g.state.Rules),
		Inputs: replay.Encode(g.inputs),
		Steps:  len(g.inputs),
		Score:  int(g.state.Score),
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	snap := g.Snapshot()
	return fmt.Sprintf("Tick: %d, Steps: %d, Pieces: %d, Seed: %d, Preset: %s, State: %s\n%s\n",
		snap.Tick, snap.Steps, snap.Pieces, g.seed, preset, snap.State, replay.Format(g.state))
}
