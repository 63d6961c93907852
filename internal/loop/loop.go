// Package loop runs one game session: it owns the player, enemies and
// projectiles, advances them once per frame, resolves collisions, keeps the
// enemy count topped up and decides when the game is over.
package loop

import (
	"time"

	"github.com/tomz197/spacedefender/internal/object"
)

// Step advances the scene by one frame of length delta. It does nothing
// unless the scene is running. delta is used as given, including very large
// or negative values.
//
// Frame order: player, enemies, projectiles, collisions, replenishment,
// loss check.
func (s *Scene) Step(delta time.Duration, in object.Controls) {
	if s.state != StateRunning {
		return
	}
	if in == nil {
		in = object.NoControls{}
	}
	dt := delta.Seconds()

	s.updatePlayer(in, dt)
	s.updateEnemies(dt)
	s.updateProjectiles(dt)
	s.checkCollisions()
	s.replenishEnemies()

	if s.player.Lives <= 0 {
		s.endGame()
	}
}

// endGame freezes the scene and shows the game-over banner.
func (s *Scene) endGame() {
	s.state = StateGameOver
	s.hud.SetGameOver(true)

	x, y := s.player.GetPosition()
	s.listener.HandleEvent(Event{
		Type:  EventGameOver,
		X:     x,
		Y:     y,
		Score: s.score.Score(),
	})
}

// Restart disposes every entity, resets the score and lives and brings back
// the opening formation. It may be called in any state.
func (s *Scene) Restart() {
	s.score.Reset()
	s.startGame()

	s.listener.HandleEvent(Event{
		Type:  EventRestarted,
		Lives: s.player.Lives,
	})
}
