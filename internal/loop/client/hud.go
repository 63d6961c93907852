package client

import "github.com/tomz197/spacedefender/internal/loop"

// hud keeps the values the scene pushes for the score and lives display.
// The screen code reads them every frame.
type hud struct {
	score    int
	lives    int
	gameOver bool
}

var _ loop.HUD = (*hud)(nil)

func (h *hud) SetScore(score int)       { h.score = score }
func (h *hud) SetLives(lives int)       { h.lives = lives }
func (h *hud) SetGameOver(visible bool) { h.gameOver = visible }
