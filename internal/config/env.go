package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read for process-level defaults.
const (
	EnvDB   = "BLOCKFALL_DB"   // Score database path
	EnvFPS  = "BLOCKFALL_FPS"  // Tick rate
	EnvSeed = "BLOCKFALL_SEED" // Fixed generator seed
)

// Env holds defaults taken from the environment.
type Env struct {
	DBPath string
	FPS    int
	Seed   uint32
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored and existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ReadEnv returns the environment defaults, falling back to the given
// values for unset or malformed variables.
func ReadEnv(fallback Env) Env {
	env := fallback

	if db := os.Getenv(EnvDB); db != "" {
		env.DBPath = db
	}
	if fps := os.Getenv(EnvFPS); fps != "" {
		if val, err := strconv.Atoi(fps); err == nil && val > 0 && val <= 120 {
			env.FPS = val
		}
	}
	if seed := os.Getenv(EnvSeed); seed != "" {
		if val, err := strconv.ParseUint(seed, 10, 32); err == nil {
			env.Seed = uint32(val)
		}
	}

	return env
}
