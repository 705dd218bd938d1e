package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset returns the preset named s. An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
}

// ProgressionForPreset returns the progression a preset uses.
// Harder presets reach long words sooner and roll fewer bonus words.
func ProgressionForPreset(preset DifficultyPreset) ProgressionConfig {
	switch preset {
	case DifficultyEasy:
		return ProgressionConfig{Enabled: true, MediumAt: 8, HardAt: 25, BonusChance: 0.15}
	case DifficultyHard:
		return ProgressionConfig{Enabled: true, MediumAt: 2, HardAt: 8, BonusChance: 0.05}
	case DifficultyFixed:
		return ProgressionConfig{Enabled: false, BonusChance: 0}
	default:
		return ProgressionConfig{Enabled: true, MediumAt: 5, HardAt: 15, BonusChance: 0.1}
	}
}

// ApplyTyperPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded configuration as is.
func ApplyTyperPreset(cfg *TyperConfig, preset DifficultyPreset) {
	if preset == DifficultyNormal {
		return
	}
	cfg.Progression = ProgressionForPreset(preset)

	// Adjust scoring based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Round.IdleComboTimeout = 8
	case DifficultyHard:
		cfg.Round.IdleComboTimeout = 3
	}
}
