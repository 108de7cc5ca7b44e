package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) error: %v", err)
	}
	if cfg != DefaultBlockfallConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBlockfallConfig())
	}
}

func TestLoadBlockfallCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("seed: 42\nrules:\n  clear_lines: false\ntiming:\n  gravity_every_ticks: 10\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall() error: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", cfg.Seed)
	}
	if cfg.Rules.ClearLines {
		t.Error("ClearLines should be overridden to false")
	}
	if !cfg.Rules.DeathOnBlockedSpawn {
		t.Error("Keys absent from the file should keep their defaults")
	}
	if cfg.Timing.GravityEveryTicks != 10 {
		t.Errorf("GravityEveryTicks = %d, expected 10", cfg.Timing.GravityEveryTicks)
	}
}

func TestLoadBlockfallErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBlockfall(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing:\n  gravity_every_ticks: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlockfall(bad); err == nil {
		t.Error("Expected error for non-positive gravity interval")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("rules: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlockfall(broken); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name     string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{" Hard ", DifficultyHard, false},
		{"classic", DifficultyClassic, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownPreset) {
				t.Errorf("ParsePreset(%q) error = %v, expected ErrUnknownPreset", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParsePreset(%q) = %q, %v, expected %q", tt.name, got, err, tt.expected)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultBlockfallConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: difficulty = %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyClassic)
	if cfg.Difficulty.Enabled {
		t.Error("classic preset should disable progression")
	}
	if cfg.Rules != (RulesConfig{}) {
		t.Errorf("classic preset should disable all rules, got %+v", cfg.Rules)
	}

	before := cfg
	ApplyPreset(&cfg, "")
	if cfg != before {
		t.Error("empty preset should leave the config unchanged")
	}
}

func TestLoadWithPreset(t *testing.T) {
	if _, err := Load("", "nightmare"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Load() error = %v, expected ErrUnknownPreset", err)
	}
}

func TestGravityInterval(t *testing.T) {
	timing := DefaultBlockfallConfig().Timing

	tests := []struct {
		name     string
		score    int
		initial  float64
		enabled  bool
		expected int
	}{
		{"start", 0, 0, true, 30},
		{"halfway", 5000, 0, true, 10},
		{"max difficulty", 10000, 0, true, 6},
		{"beyond max", 50000, 0, true, 6},
		{"disabled", 10000, 0, false, 30},
		{"hard start", 0, 0.7, true, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig().Difficulty
			cfg.Enabled = tt.enabled
			cfg.InitialLevel = tt.initial
			dm := NewDifficultyManager(cfg)

			got := dm.GravityInterval(timing, Progress{Score: tt.score})
			if got != tt.expected {
				t.Errorf("GravityInterval() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestGravityIntervalBounds(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressTime, MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 100},
	})

	if got := dm.GravityInterval(TimingConfig{GravityEveryTicks: 30, MinGravityTicks: 4}, Progress{Ticks: 100}); got != 4 {
		t.Errorf("GravityInterval() = %d, expected min 4", got)
	}
	if got := dm.GravityInterval(TimingConfig{}, Progress{}); got != 1 {
		t.Errorf("GravityInterval() with zero base = %d, expected 1", got)
	}
}

func TestDifficultyLevelByPieces(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: ProgressPieces, MaxAt: 100},
	})

	tests := []struct {
		pieces   int
		expected float64
	}{
		{0, 0.5},
		{50, 0.75},
		{100, 1},
		{1000, 1},
	}
	for _, tt := range tests {
		if got := dm.Level(Progress{Pieces: tt.pieces, Score: 99999}); got != tt.expected {
			t.Errorf("Level(%d pieces) = %v, expected %v", tt.pieces, got, tt.expected)
		}
	}
}

func TestDifficultyNoneKeepsInitialLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 2, // clamped to 1
		Progression:  ProgressionConfig{Type: ProgressNone},
	})

	if dm.Progressing() {
		t.Error("progression type none should not progress")
	}
	if got := dm.Level(Progress{Score: 5000}); got != 1 {
		t.Errorf("Level() = %v, expected clamped initial level 1", got)
	}
}

func TestParseRejectsUnknownProgression(t *testing.T) {
	_, err := parse([]byte("difficulty:\n  progression:\n    type: lines\n"))
	if err == nil {
		t.Error("expected error for unknown progression type")
	}
}

func TestReadEnv(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/scores.db")
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvSeed, "not-a-number")

	env := ReadEnv(Env{FPS: 60, Seed: 7})
	if env.DBPath != "/tmp/scores.db" {
		t.Errorf("DBPath = %q", env.DBPath)
	}
	if env.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", env.FPS)
	}
	if env.Seed != 7 {
		t.Errorf("Seed = %d, expected fallback 7", env.Seed)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(EnvSeed+"=99\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := ReadEnv(Env{}).Seed; got != 99 {
		t.Errorf("Seed from .env = %d, expected 99", got)
	}
}
