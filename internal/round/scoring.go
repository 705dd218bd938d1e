package round

import (
	"math"
	"time"
)

// SpeedBonus rewards fast completions; it saturates at MaxSpeedBonus for an
// instant completion and never drops below MinSpeedBonus.
func (r Rules) SpeedBonus(elapsed time.Duration) float64 {
	bonus := r.MaxSpeedBonus - elapsed.Seconds()*r.SpeedDecayPerSecond
	return math.Max(r.MinSpeedBonus, math.Min(r.MaxSpeedBonus, bonus))
}

// ComboMultiplier returns the multiplier for a combo that already includes
// the word being scored.
func (r Rules) ComboMultiplier(combo int) float64 {
	if combo < 1 {
		return 1
	}
	return math.Min(r.MaxComboMultiplier, 1+float64(combo-1)*r.ComboStep)
}

// Points combines base points with the speed and combo bonuses.
func (r Rules) Points(base int, elapsed time.Duration, combo int) int {
	return int(math.Floor(float64(base) * r.SpeedBonus(elapsed) * r.ComboMultiplier(combo)))
}

// WPM returns completed words per minute of typing time, 0 when no time has passed.
func WPM(completed int, typing time.Duration) int {
	if typing <= 0 {
		return 0
	}
	return int(math.Floor(float64(completed) / typing.Minutes()))
}
