package round

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidRules is returned by NewEngine when the rules cannot drive a round.
var ErrInvalidRules = errors.New("round: invalid rules")

// Rules holds the tunable constants of scoring, combo decay and timer warnings.
type Rules struct {
	// Speed bonus: max(MinSpeedBonus, MaxSpeedBonus - elapsed*SpeedDecayPerSecond)
	MaxSpeedBonus       float64
	MinSpeedBonus       float64
	SpeedDecayPerSecond float64

	// Combo multiplier: min(MaxComboMultiplier, 1 + (combo-1)*ComboStep)
	ComboStep          float64
	MaxComboMultiplier float64

	// ComboLostMin is the smallest lost combo that emits ComboLost.
	ComboLostMin int

	// IdleComboTimeout resets the combo when no word completes for this long.
	IdleComboTimeout time.Duration

	// TimerLowThresholds fire TimerLow once per round each.
	TimerLowThresholds []time.Duration

	Progression Progression
}

// DefaultRules returns the standard game rules.
func DefaultRules() Rules {
	return Rules{
		MaxSpeedBonus:       3,
		MinSpeedBonus:       1,
		SpeedDecayPerSecond: 0.5,
		ComboStep:           0.1,
		MaxComboMultiplier:  3,
		ComboLostMin:        2,
		IdleComboTimeout:    5 * time.Second,
		TimerLowThresholds:  []time.Duration{5 * time.Second, 2 * time.Second},
		Progression:         DefaultProgression(),
	}
}

// Validate reports rules that would break the round invariants.
func (r Rules) Validate() error {
	switch {
	case r.MinSpeedBonus <= 0:
		return fmt.Errorf("%w: min speed bonus must be positive", ErrInvalidRules)
	case r.MaxSpeedBonus < r.MinSpeedBonus:
		return fmt.Errorf("%w: max speed bonus below min", ErrInvalidRules)
	case r.SpeedDecayPerSecond < 0:
		return fmt.Errorf("%w: negative speed decay", ErrInvalidRules)
	case r.ComboStep < 0:
		return fmt.Errorf("%w: negative combo step", ErrInvalidRules)
	case r.MaxComboMultiplier < 1:
		return fmt.Errorf("%w: max combo multiplier below 1", ErrInvalidRules)
	case r.IdleComboTimeout <= 0:
		return fmt.Errorf("%w: idle combo timeout must be positive", ErrInvalidRules)
	}
	for _, th := range r.TimerLowThresholds {
		if th <= 0 {
			return fmt.Errorf("%w: timer threshold %v must be positive", ErrInvalidRules, th)
		}
	}
	return r.Progression.Validate()
}

// thresholds returns the timer thresholds sorted from largest to smallest.
func (r Rules) thresholds() []time.Duration {
	out := append([]time.Duration(nil), r.TimerLowThresholds...)
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
