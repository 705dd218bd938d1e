package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/constellation/internal/round"
)

// HighScores adapts a Store to round.HighScoreStore. Database failures are
// logged and degrade to "no high score" so a round never fails on storage.
type HighScores struct {
	store  *Store
	logger *log.Logger
}

// Ensure HighScores implements round.HighScoreStore
var _ round.HighScoreStore = (*HighScores)(nil)

// NewHighScores wraps store. A nil store behaves as an empty table.
func NewHighScores(store *Store, logger *log.Logger) *HighScores {
	if logger == nil {
		logger = log.Default()
	}
	return &HighScores{store: store, logger: logger}
}

// Load returns the high score for a duration in seconds.
func (h *HighScores) Load(tier int) int {
	if h.store == nil {
		return 0
	}
	score, err := h.store.HighScore(tier)
	if err != nil {
		h.logger.Warn("could not load high score", "duration", tier, "error", err)
		return 0
	}
	return score
}

// Save stores a new high score for a duration in seconds.
func (h *HighScores) Save(tier, score int) {
	if h.store == nil {
		return
	}
	if err := h.store.SetHighScore(tier, score); err != nil {
		h.logger.Warn("could not save high score", "duration", tier, "score", score, "error", err)
	}
}

// Recorder is a round.Sink that writes every finished round to the history table.
// Rounds ended before any word was completed are not recorded.
type Recorder struct {
	store  *Store
	logger *log.Logger
	player string
	pack   string
	lastID string
}

// NewRecorder creates a recorder attributing rounds to player and pack.
func NewRecorder(store *Store, logger *log.Logger, player, pack string) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, logger: logger, player: player, pack: pack}
}

// HandleEvent implements round.Sink.
func (r *Recorder) HandleEvent(ev round.Event) {
	ended, ok := ev.(round.RoundEnded)
	if !ok || r.store == nil || ended.WordsCompleted == 0 {
		return
	}

	id, err := r.store.SaveRound(RoundRecord{
		DurationSecs:   round.DurationTier(ended.Duration),
		Score:          ended.Score,
		WordsCompleted: ended.WordsCompleted,
		MaxCombo:       ended.MaxCombo,
		WPM:            ended.WPM,
		Player:         r.player,
		Pack:           r.pack,
	})
	if err != nil {
		r.logger.Warn("could not record round", "player", r.player, "score", ended.Score, "error", err)
		return
	}
	r.lastID = id
	r.logger.Debug("round recorded", "id", id, "player", r.player, "score", ended.Score)
}

// LastID returns the ID of the most recently recorded round.
func (r *Recorder) LastID() string {
	return r.lastID
}
