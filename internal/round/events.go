package round

import (
	"time"

	"github.com/vovakirdan/constellation/internal/words"
)

// Event is emitted by the engine to presentation sinks.
type Event interface {
	roundEvent()
}

// Sink receives engine events. Handlers run synchronously inside the engine
// call that produced the event and must not call back into the engine.
type Sink interface {
	HandleEvent(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// HandleEvent calls f(ev).
func (f SinkFunc) HandleEvent(ev Event) {
	f(ev)
}

// RoundStarted is emitted by Start with the first word revealed.
type RoundStarted struct {
	Duration  time.Duration
	HighScore int // Best score stored for this duration
	Word      words.Word
}

func (RoundStarted) roundEvent() {}

// TimerStarted is emitted on the first accepted letter of a round.
type TimerStarted struct {
	At time.Time
}

func (TimerStarted) roundEvent() {}

// PrefixUpdated is emitted whenever the typed prefix changes without completing the word.
type PrefixUpdated struct {
	Prefix string
	Word   string
}

func (PrefixUpdated) roundEvent() {}

// WrongLetter is emitted when a letter does not continue the current word.
// The letter is not appended to the prefix.
type WrongLetter struct {
	Letter   rune
	Expected rune
	Prefix   string
}

func (WrongLetter) roundEvent() {}

// ComboLossReason describes why a combo was reset.
type ComboLossReason int

const (
	ComboLossWrongLetter ComboLossReason = iota
	ComboLossIdle
)

func (r ComboLossReason) String() string {
	switch r {
	case ComboLossWrongLetter:
		return "wrong letter"
	case ComboLossIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// ComboLost is emitted when a combo of at least Rules.ComboLostMin is reset.
type ComboLost struct {
	Previous int
	Reason   ComboLossReason
}

func (ComboLost) roundEvent() {}

// WordCompleted is emitted after scoring a word; Next is already revealed.
type WordCompleted struct {
	Word       words.Word
	Points     int
	Combo      int
	SpeedBonus float64
	Multiplier float64
	Score      int
	Next       words.Word
}

func (WordCompleted) roundEvent() {}

// TimerLow is emitted once per round when the remaining time reaches a threshold.
type TimerLow struct {
	Threshold time.Duration
	Remaining time.Duration
}

func (TimerLow) roundEvent() {}

// RoundEnded is emitted once when a round stops.
type RoundEnded struct {
	Duration       time.Duration
	Score          int
	WordsCompleted int
	MaxCombo       int
	WPM            int
	HighScore      int
	NewHighScore   bool
}

func (RoundEnded) roundEvent() {}
