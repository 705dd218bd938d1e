package lobby

import (
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/constellation/internal/round"
)

// Lobby tracks active sessions. Safe for concurrent use.
type Lobby struct {
	mu       sync.RWMutex
	sessions map[SessionID]*Session
	buffer   int
	now      func() time.Time
}

// New creates an empty lobby. buffer is the per-session event buffer
// (0 uses the default).
func New(buffer int) *Lobby {
	return &Lobby{
		sessions: make(map[SessionID]*Session),
		buffer:   buffer,
		now:      time.Now,
	}
}

// Join registers a session and tells the others about it.
// Joining again with the same ID replaces the old session.
func (l *Lobby) Join(id SessionID, player string) *Session {
	s := newSession(id, player, l.buffer)

	l.mu.Lock()
	if old, ok := l.sessions[id]; ok {
		old.close()
	}
	l.sessions[id] = s
	online := len(l.sessions)
	l.mu.Unlock()

	l.broadcast(id, PlayerJoined{Player: player, Online: online})
	return s
}

// Leave removes a session and tells the others. Unknown IDs are ignored.
func (l *Lobby) Leave(id SessionID) {
	l.mu.Lock()
	s, ok := l.sessions[id]
	if ok {
		delete(l.sessions, id)
	}
	online := len(l.sessions)
	l.mu.Unlock()

	if !ok {
		return
	}
	s.close()
	l.broadcast(id, PlayerLeft{Player: s.player, Online: online})
}

// Get retrieves a session by ID.
func (l *Lobby) Get(id SessionID) (*Session, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// Players returns the sorted names of connected players.
func (l *Lobby) Players() []string {
	l.mu.RLock()
	names := make([]string, 0, len(l.sessions))
	for _, s := range l.sessions {
		names = append(names, s.player)
	}
	l.mu.RUnlock()

	sort.Strings(names)
	return names
}

// broadcast sends evt to every session except from.
func (l *Lobby) broadcast(from SessionID, evt Event) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for id, s := range l.sessions {
		if id != from {
			s.Send(evt)
		}
	}
}

// RecordSink returns a round sink that announces the session's new high
// scores to everyone else.
func (l *Lobby) RecordSink(s *Session) round.Sink {
	return round.SinkFunc(func(ev round.Event) {
		end, ok := ev.(round.RoundEnded)
		if !ok || !end.NewHighScore {
			return
		}
		l.broadcast(s.id, RecordSet{
			Player:       s.player,
			DurationSecs: round.DurationTier(end.Duration),
			Score:        end.Score,
			At:           l.now(),
		})
	})
}
