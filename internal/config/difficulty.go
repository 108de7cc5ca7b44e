package config

import (
	"fmt"
	"math"
)

// Progression types accepted in difficulty.progression.type.
const (
	ProgressScore  = "score"  // Level follows the score
	ProgressTime   = "time"   // Level follows elapsed ticks
	ProgressPieces = "pieces" // Level follows the number of locked pieces
	ProgressNone   = "none"   // Level stays at initial_level
)

// Progress is how far a game has got. Only the field matching the
// configured progression type is read.
type Progress struct {
	Score  int
	Ticks  int
	Pieces int
}

// DifficultyManager turns game progress into gravity timing.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		start: unit(cfg.InitialLevel),
	}
}

// Progressing reports whether the level moves with the game at all.
func (d *DifficultyManager) Progressing() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level returns the difficulty in [initial_level, 1] reached at p.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.Progressing() {
		return d.start
	}

	var done int
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = p.Score
	case ProgressTime:
		done = p.Ticks
	case ProgressPieces:
		done = p.Pieces
	default:
		return d.start
	}

	maxAt := max(1, d.cfg.Progression.MaxAt)
	return d.start + unit(float64(done)/float64(maxAt))*(1-d.start)
}

// GravityInterval returns the number of ticks between idle gravity steps
// at p. The base interval is divided by 1 + level*speed_multiplier and kept
// within [min_gravity_ticks, gravity_every_ticks], never below one tick.
func (d *DifficultyManager) GravityInterval(t TimingConfig, p Progress) int {
	base := max(1, t.GravityEveryTicks)
	fastest := max(1, min(t.MinGravityTicks, base))

	speed := 1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	interval := int(math.Round(float64(base) / speed))
	return max(fastest, min(base, interval))
}

// validateProgression rejects unknown progression types.
func validateProgression(p ProgressionConfig) error {
	switch p.Type {
	case ProgressScore, ProgressTime, ProgressPieces, ProgressNone:
		return nil
	}
	return fmt.Errorf("difficulty.progression.type must be score, time, pieces or none, got %q", p.Type)
}

// unit clamps v to [0, 1].
func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
