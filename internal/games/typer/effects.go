package typer

import (
	"time"

	"github.com/vovakirdan/constellation/internal/round"
)

// EffectSettings controls how long presentation effects stay on screen.
type EffectSettings struct {
	Shake       time.Duration
	Flash       time.Duration
	ComboBanner time.Duration
	TimerPulse  time.Duration
	StreakTiers []int // Combo values that unlock a new streak badge, ascending
}

// DefaultEffectSettings returns the standard effect timings.
func DefaultEffectSettings() EffectSettings {
	return EffectSettings{
		Shake:       500 * time.Millisecond,
		Flash:       300 * time.Millisecond,
		ComboBanner: 1200 * time.Millisecond,
		TimerPulse:  600 * time.Millisecond,
		StreakTiers: []int{3, 5, 10},
	}
}

// flashKind tells the renderer what the flash is for.
type flashKind int

const (
	flashNone flashKind = iota
	flashWrong
	flashComboLost
	flashComplete
)

// effects holds the decaying presentation timers. They are set only by
// round events and run down only in advance.
type effects struct {
	settings EffectSettings

	shake     time.Duration
	flash     time.Duration
	flashKind flashKind

	banner     time.Duration
	bannerText string

	popup     time.Duration
	popupText string

	pulse          time.Duration
	pulseThreshold time.Duration

	streak int // Index into StreakTiers + 1, 0 for no badge
}

func newEffects(settings EffectSettings) effects {
	return effects{settings: settings}
}

// reset clears every effect, used when a new round starts.
func (fx *effects) reset() {
	*fx = effects{settings: fx.settings}
}

// apply starts the effects an event calls for.
func (fx *effects) apply(ev round.Event) {
	switch e := ev.(type) {
	case round.RoundStarted:
		fx.reset()

	case round.WrongLetter:
		fx.startFlash(flashWrong)

	case round.ComboLost:
		fx.shake = fx.settings.Shake
		fx.startFlash(flashComboLost)
		fx.banner = fx.settings.ComboBanner
		fx.bannerText = comboLostText(e)
		fx.streak = 0

	case round.WordCompleted:
		fx.startFlash(flashComplete)
		fx.popup = fx.settings.ComboBanner
		fx.popupText = pointsText(e.Points)
		fx.streak = streakTier(fx.settings.StreakTiers, e.Combo)

	case round.TimerLow:
		fx.pulse = fx.settings.TimerPulse
		fx.pulseThreshold = e.Threshold

	case round.RoundEnded:
		fx.shake = 0
		fx.flash = 0
		fx.pulse = 0
		fx.banner = 0
		fx.popup = 0
	}
}

func (fx *effects) startFlash(kind flashKind) {
	// A combo-loss flash is not overridden by a plain wrong-letter flash
	if fx.flash > 0 && fx.flashKind == flashComboLost && kind == flashWrong {
		return
	}
	fx.flash = fx.settings.Flash
	fx.flashKind = kind
}

// advance runs every timer down by dt.
func (fx *effects) advance(dt time.Duration) {
	fx.shake = decay(fx.shake, dt)
	fx.flash = decay(fx.flash, dt)
	fx.banner = decay(fx.banner, dt)
	fx.popup = decay(fx.popup, dt)
	fx.pulse = decay(fx.pulse, dt)

	if fx.flash == 0 {
		fx.flashKind = flashNone
	}
}

// shakeOffset returns the horizontal displacement of the word while shaking.
func (fx *effects) shakeOffset() int {
	if fx.shake <= 0 {
		return 0
	}
	if (fx.shake/(50*time.Millisecond))%2 == 0 {
		return -1
	}
	return 1
}

// pulseOn reports whether the timer is in the bright half of a pulse.
func (fx *effects) pulseOn() bool {
	return fx.pulse > 0 && (fx.pulse/(150*time.Millisecond))%2 == 0
}

func decay(d, dt time.Duration) time.Duration {
	if d <= dt {
		return 0
	}
	return d - dt
}

// streakTier returns how many streak thresholds combo has reached.
func streakTier(tiers []int, combo int) int {
	n := 0
	for _, t := range tiers {
		if combo >= t {
			n++
		}
	}
	return n
}
