package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "blockfall.yaml"

// LoadBlockfall loads blockfall configuration.
// Search order: customPath -> ~/.blockfall/configs/blockfall.yaml -> ./configs/blockfall.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file may set only the keys it changes.
func LoadBlockfall(customPath string) (BlockfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlockfallConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultBlockfallConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBlockfallYAML)
	if err != nil {
		return DefaultBlockfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Load loads the configuration and applies a named preset on top of it.
func Load(customPath, preset string) (BlockfallConfig, error) {
	p, err := ParsePreset(preset)
	if err != nil {
		return DefaultBlockfallConfig(), err
	}
	cfg, err := LoadBlockfall(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, p)
	return cfg, nil
}

func parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Timing.GravityEveryTicks < 1 {
		return cfg, fmt.Errorf("timing.gravity_every_ticks must be positive, got %d", cfg.Timing.GravityEveryTicks)
	}
	if cfg.Rules.LockDelay < 0 {
		return cfg, fmt.Errorf("rules.lock_delay must not be negative, got %d", cfg.Rules.LockDelay)
	}
	if err := validateProgression(cfg.Difficulty.Progression); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}
