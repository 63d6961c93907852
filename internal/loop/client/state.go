package client

import (
	"time"

	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/scoreboard"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Game over, show final score and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-session screen state. The game itself lives in the
// client's scene.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Running       bool               // Client loop running
	FinalScore    int                // Score of the last finished game
	LastRank      int                // Scoreboard rank of the last finished game, 0 if unplaced
	TopScores     []scoreboard.Entry // Cached scoreboard, refreshed on change
	delta         time.Duration      // Frame delta time
	shutdownTimer float64            // Countdown before auto-disconnect on shutdown
	isInactive    bool               // Whether the client is in inactive warning state

	// Previous values, to clear the terminal on screen changes.
	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
