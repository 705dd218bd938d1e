package round

import (
	"time"

	"github.com/vovakirdan/constellation/internal/words"
)

// Phase is the state machine position of a round.
type Phase int

const (
	PhaseIdle    Phase = iota // No round started yet
	PhasePending              // Round active, waiting for the first letter
	PhaseRunning              // Round active, timer counting down
	PhaseEnded                // Round stopped; state frozen until next Start
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// State is a snapshot of a round. The engine owns the live copy.
type State struct {
	Phase         Phase
	IsActive      bool
	Duration      time.Duration
	TimeRemaining time.Duration
	TimerStarted  bool

	TypedPrefix string
	CurrentWord words.Word

	Score          int
	Combo          int
	MaxCombo       int
	WordsCompleted int
	WPM            int

	StartedAt           time.Time
	TimerStartedAt      time.Time
	LastWordCompletedAt time.Time

	HighScore   int // Stored best for this duration, updated on a new record
	SessionBest int // Best score across rounds of this engine
}

// HasWord reports whether a word is currently revealed.
func (s State) HasWord() bool {
	return s.CurrentWord.Text != ""
}

// Remaining returns the untyped suffix of the current word.
func (s State) Remaining() string {
	if len(s.TypedPrefix) > len(s.CurrentWord.Text) {
		return ""
	}
	return s.CurrentWord.Text[len(s.TypedPrefix):]
}

// DurationTier returns the duration in whole seconds, the key of the high-score table.
func DurationTier(d time.Duration) int {
	return int(d / time.Second)
}
