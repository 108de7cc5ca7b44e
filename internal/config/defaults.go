package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default configuration: arcade rules,
// one gravity step per half second at 60 ticks per second.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Seed: 0,
		Rules: RulesConfig{
			DeathOnBlockedSpawn: true,
			LockDelay:           1,
			ClearLines:          true,
		},
		Timing: TimingConfig{
			GravityEveryTicks: 30,
			MinGravityTicks:   4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
