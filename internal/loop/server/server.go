// Package server is the lobby shared by every connected session. Each
// session plays its own game; the lobby tracks who is connected, collects
// final scores into the scoreboard and announces shutdown.
package server

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/spacedefender/internal/scoreboard"
)

// ErrShuttingDown is returned by RegisterClient once Shutdown has begun.
var ErrShuttingDown = errors.New("server is shutting down")

// GameServer is the interface clients use to talk to the lobby.
type GameServer interface {
	RegisterClient(username string) (*ClientHandle, error)
	UnregisterClient(clientID string)
	ReportScore(clientID string, score int) int
	TopScores(n int) []scoreboard.Entry
	Players() int
}

// Server keeps the session registry and the shared scoreboard.
type Server struct {
	mu           sync.RWMutex
	clients      map[string]*ClientHandle
	board        *scoreboard.Board
	logger       *log.Logger
	shuttingDown bool
	now          func() time.Time
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a lobby recording into board. A nil logger uses the
// charmbracelet/log default.
func NewServer(board *scoreboard.Board, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		clients: make(map[string]*ClientHandle),
		board:   board,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterClient adds a session and returns its handle.
func (s *Server) RegisterClient(username string) (*ClientHandle, error) {
	if username == "" {
		username = "anonymous"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shuttingDown {
		return nil, ErrShuttingDown
	}

	handle := &ClientHandle{
		ID:       uuid.NewString(),
		Username: username,
		Joined:   s.now(),
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[handle.ID] = handle
	s.logger.Info("session joined", "session", handle.ID, "user", username, "players", len(s.clients))
	return handle, nil
}

// UnregisterClient removes a session and closes its event channel. Unknown
// IDs are ignored.
func (s *Server) UnregisterClient(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.logger.Info("session left",
		"session", clientID,
		"user", handle.Username,
		"games", handle.Games,
		"best", handle.BestScore,
		"duration", s.now().Sub(handle.Joined).Round(time.Second),
	)
}

// ReportScore records a finished game and returns its scoreboard rank, or 0
// if it did not place. Every session is told when the table changes.
func (s *Server) ReportScore(clientID string, score int) int {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if !ok {
		s.mu.Unlock()
		return 0
	}
	handle.Games++
	if score > handle.BestScore {
		handle.BestScore = score
	}
	username := handle.Username
	s.mu.Unlock()

	rank, err := s.board.Record(username, score, s.now())
	if err != nil {
		s.logger.Error("failed to save scoreboard", "session", clientID, "err", err)
	}
	s.logger.Info("game over", "session", clientID, "user", username, "score", score, "rank", rank)

	if rank > 0 {
		s.broadcast(ClientEvent{Type: EventScoreboardChanged, Rank: rank})
	}
	return rank
}

// TopScores returns up to n scoreboard entries, best first.
func (s *Server) TopScores(n int) []scoreboard.Entry {
	return s.board.Top(n)
}

// Players returns the number of connected sessions.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Sessions returns a summary of every connected session.
func (s *Server) Sessions() []SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SessionStats, 0, len(s.clients))
	for _, h := range s.clients {
		out = append(out, h.stats())
	}
	return out
}

// Shutdown refuses new sessions, notifies connected ones and waits for them
// to disconnect (up to the given timeout). It reports whether every session
// left in time.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()

	s.broadcast(ClientEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return true
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.Players())
			return false
		case <-ticker.C:
		}
	}
}

func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		if !handle.notify(ev) {
			s.logger.Debug("dropped session event", "session", handle.ID, "type", ev.Type)
		}
	}
}
