// Package config provides YAML-based configuration loading and difficulty
// presets for the typing game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/constellation/internal/round"
	"github.com/vovakirdan/constellation/internal/words"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive a round.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// TyperConfig contains all configuration for the typing game.
type TyperConfig struct {
	Round       RoundConfig       `yaml:"round"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Progression ProgressionConfig `yaml:"progression"`
	Words       WordsConfig       `yaml:"words"`
	Effects     EffectsConfig     `yaml:"effects"`
}

// RoundConfig defines round durations and timers. Times are in seconds.
type RoundConfig struct {
	Durations          []int     `yaml:"durations"`
	DefaultDuration    int       `yaml:"default_duration"`
	IdleComboTimeout   float64   `yaml:"idle_combo_timeout"`
	TimerLowThresholds []float64 `yaml:"timer_low_thresholds"`
}

// ScoringConfig defines speed bonus, combo and tier multiplier parameters.
type ScoringConfig struct {
	MaxSpeedBonus       float64         `yaml:"max_speed_bonus"`
	MinSpeedBonus       float64         `yaml:"min_speed_bonus"`
	SpeedDecayPerSecond float64         `yaml:"speed_decay_per_second"`
	ComboStep           float64         `yaml:"combo_step"`
	MaxComboMultiplier  float64         `yaml:"max_combo_multiplier"`
	ComboLostMin        int             `yaml:"combo_lost_min"` // Smallest lost combo worth announcing
	Multipliers         TierMultipliers `yaml:"multipliers"`
}

// TierMultipliers are the per-tier base point multipliers.
type TierMultipliers struct {
	Easy   float64 `yaml:"easy"`
	Medium float64 `yaml:"medium"`
	Hard   float64 `yaml:"hard"`
	Bonus  float64 `yaml:"bonus"`
}

// ProgressionConfig defines how word difficulty grows within a round.
type ProgressionConfig struct {
	Enabled     bool    `yaml:"enabled"`      // false keeps every word easy (bonus rolls still apply)
	MediumAt    int     `yaml:"medium_at"`    // Completed words before medium words appear
	HardAt      int     `yaml:"hard_at"`      // Completed words before hard words appear
	BonusChance float64 `yaml:"bonus_chance"` // 0.0 - 1.0
}

// WordsConfig selects the word pack.
type WordsConfig struct {
	Pack string `yaml:"pack"` // Registered pack ID
	File string `yaml:"file"` // Optional YAML pack, takes precedence over Pack
}

// EffectsConfig defines how long presentation effects last, in seconds.
type EffectsConfig struct {
	Shake       float64 `yaml:"shake"`
	Flash       float64 `yaml:"flash"`
	ComboBanner float64 `yaml:"combo_banner"`
	TimerPulse  float64 `yaml:"timer_pulse"`
	StreakTiers []int   `yaml:"streak_tiers"`
}

// Validate reports values that would produce a broken round.
func (c TyperConfig) Validate() error {
	if len(c.Round.Durations) == 0 {
		return fmt.Errorf("%w: no round durations", ErrInvalidConfig)
	}
	found := false
	for _, d := range c.Round.Durations {
		if d <= 0 {
			return fmt.Errorf("%w: duration %d must be positive", ErrInvalidConfig, d)
		}
		if d == c.Round.DefaultDuration {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: default duration %d is not in %v", ErrInvalidConfig, c.Round.DefaultDuration, c.Round.Durations)
	}

	m := c.Scoring.Multipliers
	if m.Easy <= 0 || m.Medium <= 0 || m.Hard <= 0 || m.Bonus <= 0 {
		return fmt.Errorf("%w: tier multipliers must be positive", ErrInvalidConfig)
	}

	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Rules converts the scoring, round and progression sections to engine rules.
func (c TyperConfig) Rules() round.Rules {
	thresholds := make([]time.Duration, 0, len(c.Round.TimerLowThresholds))
	for _, s := range c.Round.TimerLowThresholds {
		thresholds = append(thresholds, seconds(s))
	}

	return round.Rules{
		MaxSpeedBonus:       c.Scoring.MaxSpeedBonus,
		MinSpeedBonus:       c.Scoring.MinSpeedBonus,
		SpeedDecayPerSecond: c.Scoring.SpeedDecayPerSecond,
		ComboStep:           c.Scoring.ComboStep,
		MaxComboMultiplier:  c.Scoring.MaxComboMultiplier,
		ComboLostMin:        c.Scoring.ComboLostMin,
		IdleComboTimeout:    seconds(c.Round.IdleComboTimeout),
		TimerLowThresholds:  thresholds,
		Progression:         c.Progression.toRound(),
	}
}

// Multipliers returns the tier multipliers for a word source.
func (c TyperConfig) Multipliers() words.Multipliers {
	m := c.Scoring.Multipliers
	return words.Multipliers{
		words.TierEasy:   m.Easy,
		words.TierMedium: m.Medium,
		words.TierHard:   m.Hard,
		words.TierBonus:  m.Bonus,
	}
}

// Durations returns the selectable round durations.
func (c TyperConfig) Durations() []time.Duration {
	out := make([]time.Duration, 0, len(c.Round.Durations))
	for _, d := range c.Round.Durations {
		out = append(out, time.Duration(d)*time.Second)
	}
	return out
}

// DefaultDuration returns the duration preselected when no preference exists.
func (c TyperConfig) DefaultDuration() time.Duration {
	return time.Duration(c.Round.DefaultDuration) * time.Second
}

// HasDuration reports whether secs is one of the selectable durations.
func (c TyperConfig) HasDuration(secs int) bool {
	for _, d := range c.Round.Durations {
		if d == secs {
			return true
		}
	}
	return false
}

// EffectDuration converts an effects value to a time.Duration.
func EffectDuration(secs float64) time.Duration {
	return seconds(secs)
}

func (p ProgressionConfig) toRound() round.Progression {
	if !p.Enabled {
		// Nobody completes this many words in a round
		return round.Progression{MediumAt: fixedTierAt, HardAt: fixedTierAt, BonusChance: p.BonusChance}
	}
	return round.Progression{MediumAt: p.MediumAt, HardAt: p.HardAt, BonusChance: p.BonusChance}
}

const fixedTierAt = 1 << 30

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
