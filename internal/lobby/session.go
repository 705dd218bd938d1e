package lobby

import "sync"

// defaultBuffer is the number of undelivered events a session keeps.
const defaultBuffer = 16

// Session is one connected player. Events are delivered through a buffered
// channel; when the player falls behind the oldest events are dropped.
type Session struct {
	id       SessionID
	player   string
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

func newSession(id SessionID, player string, buffer int) *Session {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	return &Session{
		id:     id,
		player: player,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() SessionID {
	return s.id
}

// Player returns the player name.
func (s *Session) Player() string {
	return s.player
}

// Send delivers an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (s *Session) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Done returns a channel closed when the session leaves the lobby.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
