package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

const defaultVariant = string(blockfall.VariantArcade)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: blockfall).

Controls:
  Left/Right, A/D   - Move
  Up/X              - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Space             - Hard drop
  Down/S            - Soft drop
  P                 - Pause
  R                 - Restart (after game over)
  Esc               - Quit (when paused or after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - Slow gravity, speeds up with score
  normal  - Default gravity, speeds up with score
  hard    - Starts fast
  classic - Fixed gravity, every optional rule off

Examples:
  blockfall play
  blockfall play blockfall_classic
  blockfall play --difficulty hard
  blockfall play --seed 42
  blockfall play --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
}

// terminalConfig builds the runtime config from flags and the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := defaultVariant
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available variants.")
		os.Exit(1)
	}

	blockfall.SetConfigPath(flagConfig)
	if err := blockfall.SetDifficultyPreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	state, runID, runErr := tui.Run(game, store, terminalConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if d, ok := game.(interface{ DebugState() string }); ok {
		logger.Debug("final state\n" + d.DebugState())
	}

	fmt.Printf("Score: %d\n", state.Score)
	if runID != "" {
		fmt.Printf("Run saved as %s (replay with 'blockfall replay --run %s')\n", runID, runID[:8])
	}
}
