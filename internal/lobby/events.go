// Package lobby tracks the players connected to one server and lets them
// hear about each other: who joined, who left, who set a new record.
package lobby

import "time"

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// Event is a notice delivered to a session.
type Event interface {
	lobbyEvent()
}

// PlayerJoined is sent to everyone else when a player connects.
type PlayerJoined struct {
	Player string
	Online int
}

func (PlayerJoined) lobbyEvent() {}

// PlayerLeft is sent to everyone else when a player disconnects.
type PlayerLeft struct {
	Player string
	Online int
}

func (PlayerLeft) lobbyEvent() {}

// RecordSet is sent to everyone else when a round beats the stored high score.
type RecordSet struct {
	Player       string
	DurationSecs int
	Score        int
	At           time.Time
}

func (RecordSet) lobbyEvent() {}
