// blockfall is a deterministic falling-block game for the terminal.
//
// Usage:
//
//	blockfall list                 - List available variants
//	blockfall play [variant]       - Play a variant
//	blockfall menu                 - Pick variants interactively
//	blockfall serve                - Start SSH server for remote play
//	blockfall scores [variant]     - Show high scores for a variant
//	blockfall replay               - Replay an input script or a stored run
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set generator seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.blockfall/blockfall.db)
//	--log-level <lvl>   - debug, info, warn or error
//
// BLOCKFALL_DB, BLOCKFALL_FPS and BLOCKFALL_SEED (also read from .env)
// provide defaults for the matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/logging"
	"github.com/vovakirdan/blockfall/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a deterministic falling-block game in your terminal",
	Long: `Blockfall is a falling-block puzzle game for the terminal.

Every game is a pure function of its seed and inputs, so any finished
run can be replayed exactly.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Replay inputs or a stored run

Examples:
  blockfall list
  blockfall play
  blockfall play blockfall_classic
  blockfall menu
  blockfall serve --ssh :2222
  blockfall replay --inputs "LLCU.RRU"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Generator seed (0 = random for play, default seed for replay)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup loads .env, fills unset flags from the environment and builds the
// logger shared by all commands.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger = logging.New("blockfall", level)

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "error", err)
	}

	env := config.ReadEnv(config.Env{
		DBPath: flagDBPath,
		FPS:    flagFPS,
		Seed:   uint32(flagSeed),
	})

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("fps") {
		flagFPS = env.FPS
	}
	if !flags.Changed("seed") {
		flagSeed = int64(env.Seed)
	}

	logger.Debug("settings", "db", flagDBPath, "fps", flagFPS, "seed", flagSeed)
	return nil
}

// openStore opens the score database, logging and returning nil on failure
// so the game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
