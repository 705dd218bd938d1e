package round

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/constellation/internal/words"
)

// Progression decides which tier the next word comes from.
type Progression struct {
	MediumAt    int     // Completed words at which medium words start
	HardAt      int     // Completed words at which hard words start
	BonusChance float64 // Probability that any pick after the first is a bonus word
}

// DefaultProgression returns easy for 0-4 words, medium for 5-14, hard from 15,
// with a 10% bonus chance.
func DefaultProgression() Progression {
	return Progression{
		MediumAt:    5,
		HardAt:      15,
		BonusChance: 0.1,
	}
}

// Validate checks that thresholds are ordered and the chance is a probability.
func (p Progression) Validate() error {
	if p.MediumAt < 0 || p.HardAt < p.MediumAt {
		return fmt.Errorf("%w: progression thresholds out of order (%d, %d)", ErrInvalidRules, p.MediumAt, p.HardAt)
	}
	if p.BonusChance < 0 || p.BonusChance > 1 {
		return fmt.Errorf("%w: bonus chance %v outside [0, 1]", ErrInvalidRules, p.BonusChance)
	}
	return nil
}

// BaseTier returns the tier for a number of completed words, ignoring bonus picks.
func (p Progression) BaseTier(completed int) words.Tier {
	switch {
	case completed >= p.HardAt:
		return words.TierHard
	case completed >= p.MediumAt:
		return words.TierMedium
	default:
		return words.TierEasy
	}
}

// Pick returns the tier for the next word. The first word of a round
// (completed == 0) is never a bonus word.
func (p Progression) Pick(completed int, rng *rand.Rand) words.Tier {
	tier := p.BaseTier(completed)
	if completed > 0 && rng.Float64() < p.BonusChance {
		return words.TierBonus
	}
	return tier
}
