package words

import (
	"fmt"
	"strings"
)

// Tier is a named difficulty bucket with its own word table and score multiplier.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	TierBonus
)

// Tiers lists every tier in lookup precedence order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard, TierBonus}

// String returns the lowercase tier name used in configs and packs.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// ParseTier converts a tier name into a Tier.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("words: unknown tier %q", s)
}

// Multipliers maps each tier to its score multiplier.
type Multipliers map[Tier]float64

// DefaultMultipliers returns the standard tier multipliers.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		TierEasy:   1,
		TierMedium: 1.5,
		TierHard:   2,
		TierBonus:  3,
	}
}

// For returns the multiplier for a tier, defaulting to 1 when unset.
func (m Multipliers) For(t Tier) float64 {
	if v, ok := m[t]; ok && v > 0 {
		return v
	}
	return 1
}
