// Package storage provides SQLite-based persistence for high scores, round
// history and player preferences.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round in the history table.
type RoundRecord struct {
	ID             string
	DurationSecs   int
	Score          int
	WordsCompleted int
	MaxCombo       int
	WPM            int
	Player         string
	Pack           string
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			duration_secs INTEGER NOT NULL,
			score INTEGER NOT NULL,
			words_completed INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			wpm INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			pack TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(duration_secs, score DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);

		CREATE TABLE IF NOT EXISTS high_scores (
			duration_secs INTEGER PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round. A new UUID is assigned when r.ID is empty.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, duration_secs, score, words_completed, max_combo, wpm, player, pack)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.DurationSecs,
		r.Score,
		r.WordsCompleted,
		r.MaxCombo,
		r.WPM,
		r.Player,
		r.Pack,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}

	return r.ID, nil
}

const roundColumns = `id, duration_secs, score, words_completed, max_combo, wpm, player, pack, created_at`

// TopRounds retrieves the best N rounds for a duration, or across all
// durations when durationSecs is 0. Results are ordered by score descending.
func (s *Store) TopRounds(durationSecs, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE ? = 0 OR duration_secs = ?
		 ORDER BY score DESC, rowid ASC
		 LIMIT ?`,
		durationSecs, durationSecs, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// RecentRounds retrieves the latest N rounds of a player, or of everybody
// when player is empty.
func (s *Store) RecentRounds(player string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE ? = '' OR player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent rounds: %w", err)
	}
	return scanRounds(rows)
}

func scanRounds(rows *sql.Rows) ([]RoundRecord, error) {
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.DurationSecs,
			&r.Score,
			&r.WordsCompleted,
			&r.MaxCombo,
			&r.WPM,
			&r.Player,
			&r.Pack,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the stored high score for a round duration.
// Returns 0 if none has been recorded.
func (s *Store) HighScore(durationSecs int) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM high_scores WHERE duration_secs = ?",
		durationSecs,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	return score, nil
}

// SetHighScore stores the high score for a round duration. A lower score
// never replaces a higher stored one.
func (s *Store) SetHighScore(durationSecs, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (duration_secs, score) VALUES (?, ?)
		 ON CONFLICT(duration_secs) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > high_scores.score`,
		durationSecs, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// HighScores returns every stored high score keyed by duration in seconds.
func (s *Store) HighScores() (map[int]int, error) {
	rows, err := s.db.Query("SELECT duration_secs, score FROM high_scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[int]int)
	for rows.Next() {
		var secs, score int
		if err := rows.Scan(&secs, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		scores[secs] = score
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return scores, nil
}

// ClearScores deletes history and high score for a duration, or everything
// when durationSecs is 0.
func (s *Store) ClearScores(durationSecs int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rounds WHERE ? = 0 OR duration_secs = ?", durationSecs, durationSecs); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM high_scores WHERE ? = 0 OR duration_secs = ?", durationSecs, durationSecs); err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SetPreference stores a preference value.
func (s *Store) SetPreference(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
	}
	return nil
}

// Preference returns a stored preference and whether it exists.
func (s *Store) Preference(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query preference %s: %w", key, err)
	}
	return value, true, nil
}

// RoundStats contains aggregated statistics for a round duration.
type RoundStats struct {
	DurationSecs int
	RoundsCount  int
	BestScore    int
	AvgScore     float64
	BestWPM      int
	BestCombo    int
	TotalWords   int64
	LastPlayed   time.Time
}

// Stats retrieves aggregated statistics for a round duration, or across all
// durations when durationSecs is 0.
func (s *Store) Stats(durationSecs int) (*RoundStats, error) {
	stats := &RoundStats{DurationSecs: durationSecs}

	// Get count, best, avg, totals
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(wpm), 0), COALESCE(MAX(max_combo), 0), COALESCE(SUM(words_completed), 0)
		 FROM rounds WHERE ? = 0 OR duration_secs = ?`,
		durationSecs, durationSecs,
	).Scan(&stats.RoundsCount, &stats.BestScore, &stats.AvgScore, &stats.BestWPM, &stats.BestCombo, &stats.TotalWords)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM rounds WHERE ? = 0 OR duration_secs = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		durationSecs, durationSecs,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles SQLite datetimes returned as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
