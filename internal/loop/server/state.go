package server

import "time"

// ClientHandle represents a session's membership in the lobby.
type ClientHandle struct {
	ID        string // Random session ID
	Username  string // Display name on the scoreboard
	Joined    time.Time
	EventsCh  chan ClientEvent // Events sent to the session
	BestScore int              // Best final score this session
	Games     int              // Finished games this session
}

// ClientEvent represents an event sent from the lobby to a session.
type ClientEvent struct {
	Type ClientEventType
	Rank int // For EventScoreboardChanged: rank of the new entry
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventScoreboardChanged ClientEventType = iota // A finished game made the table
	EventServerShutdown                           // Lobby is closing; sessions should wrap up
)

// SessionStats is a point-in-time summary of one session.
type SessionStats struct {
	ID        string
	Username  string
	Joined    time.Time
	BestScore int
	Games     int
}

func (h *ClientHandle) stats() SessionStats {
	return SessionStats{
		ID:        h.ID,
		Username:  h.Username,
		Joined:    h.Joined,
		BestScore: h.BestScore,
		Games:     h.Games,
	}
}

// notify delivers ev without blocking; a session that is not draining its
// events simply misses it.
func (h *ClientHandle) notify(ev ClientEvent) bool {
	select {
	case h.EventsCh <- ev:
		return true
	default:
		return false
	}
}
