package loop

import "github.com/tomz197/spacedefender/internal/physics"

// checkCollisions resolves hits in a fixed order: player shots vs enemies,
// enemy shots vs player, enemies vs player. Removal is immediate, so an
// entity taken out by an earlier check is not seen by later ones.
func (s *Scene) checkCollisions() {
	s.checkPlayerShots()
	s.checkEnemyShots()
	s.checkEnemyRams()
}

// checkPlayerShots lets each player projectile destroy at most one enemy.
func (s *Scene) checkPlayerShots() {
	for i := len(s.projectiles) - 1; i >= 0; i-- {
		p := s.projectiles[i]
		if !p.FromPlayer {
			continue
		}

		for j := len(s.enemies) - 1; j >= 0; j-- {
			if !physics.CheckCollision(p, s.enemies[j]) {
				continue
			}
			s.removeProjectile(i)
			s.score.Add(s.settings.KillScore)
			s.removeEnemy(j, EventEnemyDestroyed)
			break
		}
	}
}

// checkEnemyShots damages the player for every enemy projectile touching it.
func (s *Scene) checkEnemyShots() {
	for i := len(s.projectiles) - 1; i >= 0; i-- {
		p := s.projectiles[i]
		if p.FromPlayer {
			continue
		}
		if !physics.CheckCollision(p, s.player) {
			continue
		}
		s.removeProjectile(i)
		s.damagePlayer()
	}
}

// checkEnemyRams removes enemies that fly into the player and damages it.
func (s *Scene) checkEnemyRams() {
	for i := len(s.enemies) - 1; i >= 0; i-- {
		if !physics.CheckCollision(s.enemies[i], s.player) {
			continue
		}
		s.removeEnemy(i, EventEnemyCrashed)
		s.damagePlayer()
	}
}

// damagePlayer applies a hit and reports it if a life was lost.
func (s *Scene) damagePlayer() {
	if !s.player.TakeDamage() {
		return
	}
	x, y := s.player.GetPosition()
	s.listener.HandleEvent(Event{
		Type:  EventPlayerDamaged,
		X:     x,
		Y:     y,
		Score: s.score.Score(),
		Lives: s.player.Lives,
	})
}
