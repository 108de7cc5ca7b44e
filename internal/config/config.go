// Package config provides YAML-based game configuration loading and
// difficulty management for blockfall.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned when a difficulty preset name is not recognized.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// BlockfallConfig contains all configuration for a blockfall game.
type BlockfallConfig struct {
	Seed       uint32           `yaml:"seed"` // 0 lets the platform pick one
	Rules      RulesConfig      `yaml:"rules"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RulesConfig toggles the optional game mechanics.
type RulesConfig struct {
	DeathOnBlockedSpawn bool `yaml:"death_on_blocked_spawn"`
	LockDelay           int  `yaml:"lock_delay"` // Stalled gravity steps before a resting piece locks, 0 = never
	ClearLines          bool `yaml:"clear_lines"`
}

// TimingConfig maps the real-time tick loop onto discrete game steps.
type TimingConfig struct {
	GravityEveryTicks int `yaml:"gravity_every_ticks"` // Ticks between automatic gravity steps
	MinGravityTicks   int `yaml:"min_gravity_ticks"`   // Fastest gravity at max difficulty
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Gravity speed-up factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic}

// ParsePreset resolves a preset name. An empty name yields an empty preset,
// meaning the loaded config is used as is.
func ParsePreset(name string) (DifficultyPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Classic turns off every optional rule and freezes the gravity speed.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyClassic:
		cfg.Difficulty.Enabled = false
		cfg.Rules = RulesConfig{}
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
