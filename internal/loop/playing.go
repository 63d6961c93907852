package loop

import (
	"slices"

	"github.com/tomz197/spacedefender/internal/object"
)

// updatePlayer moves the ship and fires if shoot is held and the cooldown allows.
func (s *Scene) updatePlayer(in object.Controls, dt float64) {
	s.player.Update(in, dt)

	if in.IsShootPressed() && s.player.CanShoot() {
		if p := s.player.Shoot(); p != nil {
			s.addProjectile(p)
		}
	}
}

// updateEnemies moves every enemy, gives each a chance to shoot and drops the
// ones that left the field. Iterates newest first so removal is safe.
func (s *Scene) updateEnemies(dt float64) {
	for i := len(s.enemies) - 1; i >= 0; i-- {
		e := s.enemies[i]
		e.Update(dt)

		// This roll only decides whether to try; Shoot applies its own
		// cooldown and chance on top.
		if s.rng.Float64() < s.settings.EnemyShootChance {
			if p := e.Shoot(s.rng); p != nil {
				s.addProjectile(p)
			}
		}

		if e.Escaped(s.bounds) {
			s.removeEnemy(i, EventEnemyEscaped)
		}
	}
}

// updateProjectiles moves every projectile and drops the ones off the field.
func (s *Scene) updateProjectiles(dt float64) {
	for i := len(s.projectiles) - 1; i >= 0; i-- {
		p := s.projectiles[i]
		p.Update(dt)

		if p.OutOfField(s.bounds) {
			s.removeProjectile(i)
		}
	}
}

// replenishEnemies may add a single enemy while the field is thin.
func (s *Scene) replenishEnemies() {
	if len(s.enemies) >= s.settings.ReplenishThreshold {
		return
	}
	if s.rng.Float64() >= s.settings.SpawnChance {
		return
	}

	e := s.spawner.SpawnEnemy()
	s.enemies = append(s.enemies, e)
	s.listener.HandleEvent(Event{Type: EventEnemySpawned, X: e.X, Y: e.Y, Enemy: e})
}

func (s *Scene) addProjectile(p *object.Projectile) {
	s.projectiles = append(s.projectiles, p)
	s.listener.HandleEvent(Event{Type: EventProjectileFired, X: p.X, Y: p.Y, Projectile: p})
}

// removeEnemy deletes enemies[i] and reports why.
func (s *Scene) removeEnemy(i int, why EventType) {
	e := s.enemies[i]
	s.enemies = slices.Delete(s.enemies, i, i+1)
	s.listener.HandleEvent(Event{
		Type:  why,
		X:     e.X,
		Y:     e.Y,
		Enemy: e,
		Score: s.score.Score(),
		Lives: s.player.Lives,
	})
}

// removeProjectile deletes projectiles[i].
func (s *Scene) removeProjectile(i int) {
	p := s.projectiles[i]
	s.projectiles = slices.Delete(s.projectiles, i, i+1)
	s.listener.HandleEvent(Event{Type: EventProjectileRemoved, X: p.X, Y: p.Y, Projectile: p})
}
