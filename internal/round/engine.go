// Package round implements the typing-round state machine and scoring engine.
//
// An Engine owns a single round: the revealed word, the typed prefix, score,
// combo and the countdown. Hosts drive it with discrete input (HandleChar,
// HandleBackspace, HandleClearTyped), a per-frame Tick, and Start/Stop. The
// engine reports what happened through typed events delivered to subscribed
// sinks; sinks never mutate engine state.
//
// The engine is not safe for concurrent use. It is designed for a single
// cooperative loop, such as a Bubble Tea program, that serializes all calls.
package round

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/words"
)

// ErrInvalidDuration is returned by Start for a non-positive round duration.
var ErrInvalidDuration = errors.New("round: duration must be positive")

// HighScoreStore persists the best score per round duration (in whole seconds).
// Implementations swallow their own failures: Load returns 0 when nothing can be read.
type HighScoreStore interface {
	Load(tier int) int
	Save(tier int, score int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default rules.
func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

// WithClock sets the clock used for word timing, idle decay and WPM.
func WithClock(c core.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithHighScores sets the high score store.
func WithHighScores(s HighScoreStore) Option {
	return func(e *Engine) { e.highScores = s }
}

// WithRand sets the random source used for bonus word rolls.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// Engine runs typing rounds.
type Engine struct {
	source     *words.Source
	rules      Rules
	clock      core.Clock
	highScores HighScoreStore
	rng        *rand.Rand
	sinks      []Sink
	latch      *thresholdLatch

	state State
}

// NewEngine creates an engine drawing words from source.
func NewEngine(source *words.Source, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, errors.New("round: nil word source")
	}

	e := &Engine{
		source: source,
		rules:  DefaultRules(),
		clock:  core.SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.rules.Validate(); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.latch = newThresholdLatch(e.rules.thresholds())

	return e, nil
}

// Subscribe registers a sink for all future events.
func (e *Engine) Subscribe(s Sink) {
	if s != nil {
		e.sinks = append(e.sinks, s)
	}
}

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Source returns the word source.
func (e *Engine) Source() *words.Source {
	return e.source
}

// Snapshot returns a copy of the current round state.
func (e *Engine) Snapshot() State {
	return e.state
}

// Start begins a new round of the given duration. It is a no-op while a
// round is already active.
func (e *Engine) Start(d time.Duration) error {
	if e.state.IsActive {
		return nil
	}
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}

	now := e.clock.Now()
	highScore := 0
	if e.highScores != nil {
		highScore = core.Max(e.highScores.Load(DurationTier(d)), 0)
	}

	e.state = State{
		Phase:               PhasePending,
		IsActive:            true,
		Duration:            d,
		TimeRemaining:       d,
		StartedAt:           now,
		LastWordCompletedAt: now,
		HighScore:           highScore,
		SessionBest:         e.state.SessionBest,
	}
	e.latch.reset()
	e.state.CurrentWord = e.source.PickWord(e.rules.Progression.Pick(0, e.rng), now)

	e.emit(RoundStarted{
		Duration:  d,
		HighScore: highScore,
		Word:      e.state.CurrentWord,
	})
	return nil
}

// HandleChar processes one typed character. Anything other than a single
// lowercase ASCII letter, or input outside an active round, is ignored.
func (e *Engine) HandleChar(c rune) {
	if !e.state.IsActive || !words.IsLetter(c) || !e.state.HasWord() {
		return
	}

	now := e.clock.Now()
	if !e.state.TimerStarted {
		e.state.TimerStarted = true
		e.state.TimerStartedAt = now
		e.state.Phase = PhaseRunning
		e.emit(TimerStarted{At: now})
	}

	target := e.state.CurrentWord.Text
	candidate := e.state.TypedPrefix + string(c)

	switch {
	case candidate == target:
		e.completeWord(now)

	case !strings.HasPrefix(target, candidate):
		e.loseCombo(ComboLossWrongLetter)
		e.emit(WrongLetter{
			Letter:   c,
			Expected: rune(target[len(e.state.TypedPrefix)]),
			Prefix:   e.state.TypedPrefix,
		})

	default:
		e.state.TypedPrefix = candidate
		e.emit(PrefixUpdated{Prefix: candidate, Word: target})
	}
}

// HandleBackspace drops the last typed letter, if any.
func (e *Engine) HandleBackspace() {
	if !e.state.IsActive || e.state.TypedPrefix == "" {
		return
	}
	p := e.state.TypedPrefix
	e.state.TypedPrefix = p[:len(p)-1]
	e.emit(PrefixUpdated{Prefix: e.state.TypedPrefix, Word: e.state.CurrentWord.Text})
}

// HandleClearTyped clears the typed prefix without touching score or combo.
func (e *Engine) HandleClearTyped() {
	if !e.state.IsActive || e.state.TypedPrefix == "" {
		return
	}
	e.state.TypedPrefix = ""
	e.emit(PrefixUpdated{Prefix: "", Word: e.state.CurrentWord.Text})
}

// Tick advances the round timer by dt. It may be called at any interval,
// including dt == 0. The timer only runs after the first letter.
func (e *Engine) Tick(dt time.Duration) {
	if !e.state.IsActive {
		return
	}
	if dt < 0 {
		dt = 0
	}

	if e.state.TimerStarted {
		e.state.TimeRemaining -= dt
		if e.state.TimeRemaining <= 0 {
			e.state.TimeRemaining = 0
			e.Stop()
			return
		}
		for _, th := range e.latch.cross(e.state.TimeRemaining) {
			e.emit(TimerLow{Threshold: th, Remaining: e.state.TimeRemaining})
		}
	}

	now := e.clock.Now()
	if e.state.Combo > 0 && now.Sub(e.state.LastWordCompletedAt) > e.rules.IdleComboTimeout {
		e.loseCombo(ComboLossIdle)
	}
}

// Stop ends the active round. Calling Stop when no round is active is a no-op.
func (e *Engine) Stop() {
	if !e.state.IsActive {
		return
	}

	e.state.IsActive = false
	e.state.Phase = PhaseEnded
	e.state.MaxCombo = core.Max(e.state.MaxCombo, e.state.Combo)

	// The store may be shared, so compare against its current value too
	tier := DurationTier(e.state.Duration)
	best := e.state.HighScore
	if e.highScores != nil {
		best = core.Max(best, e.highScores.Load(tier))
	}

	newHighScore := e.state.Score > best
	if newHighScore {
		if e.highScores != nil {
			e.highScores.Save(tier, e.state.Score)
		}
		best = e.state.Score
	}
	e.state.HighScore = best
	e.state.SessionBest = core.Max(e.state.SessionBest, e.state.Score)

	e.emit(RoundEnded{
		Duration:       e.state.Duration,
		Score:          e.state.Score,
		WordsCompleted: e.state.WordsCompleted,
		MaxCombo:       e.state.MaxCombo,
		WPM:            e.state.WPM,
		HighScore:      e.state.HighScore,
		NewHighScore:   newHighScore,
	})
}

// completeWord scores the current word and reveals the next one.
func (e *Engine) completeWord(now time.Time) {
	word := e.state.CurrentWord
	elapsed := now.Sub(word.RevealedAt)

	e.state.Combo++
	points := e.rules.Points(e.source.PointsFor(word), elapsed, e.state.Combo)

	e.state.Score += points
	e.state.WordsCompleted++
	e.state.MaxCombo = core.Max(e.state.MaxCombo, e.state.Combo)
	e.state.LastWordCompletedAt = now
	e.state.WPM = WPM(e.state.WordsCompleted, now.Sub(e.state.TimerStartedAt))

	tier := e.rules.Progression.Pick(e.state.WordsCompleted, e.rng)
	e.state.CurrentWord = e.source.PickWord(tier, now)
	e.state.TypedPrefix = ""

	e.emit(WordCompleted{
		Word:       word,
		Points:     points,
		Combo:      e.state.Combo,
		SpeedBonus: e.rules.SpeedBonus(elapsed),
		Multiplier: e.rules.ComboMultiplier(e.state.Combo),
		Score:      e.state.Score,
		Next:       e.state.CurrentWord,
	})
}

// loseCombo resets the combo, announcing it when the streak was worth noting.
func (e *Engine) loseCombo(reason ComboLossReason) {
	previous := e.state.Combo
	e.state.Combo = 0
	if previous >= e.rules.ComboLostMin && previous > 0 {
		e.emit(ComboLost{Previous: previous, Reason: reason})
	}
}

func (e *Engine) emit(ev Event) {
	for _, s := range e.sinks {
		s.HandleEvent(ev)
	}
}
