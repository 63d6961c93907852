package object

import "math"

// Visual is the player's render state.
type Visual int

const (
	VisualNormal Visual = iota // Regular colors
	VisualAlert                // Blink phase while invulnerable
)

// Player tuning.
const (
	PlayerSpeed          = 8.0  // Units per second, horizontal only
	PlayerShootDelay     = 0.25 // Seconds between shots
	PlayerInitialLives   = 3
	InvulnerableSeconds  = 2.0
	PlayerBlinkFrequency = 10.0 // Phase flips per second of remaining invulnerability
	PlayerMuzzleOffset   = 0.5  // Projectile spawns this far above the ship
)

// Player is the ship at the bottom of the field.
type Player struct {
	X, Y  float64 // Position (z is always 0)
	Lives int     // Never below 0

	Speed      float64 // Horizontal speed
	ShootDelay float64 // Cooldown applied after each shot

	shootCooldown    float64 // Seconds until the next shot; only compared > 0
	invulnerable     bool
	invulnerableTime float64
	visual           Visual

	bounds  Bounds
	display LivesDisplay
}

// NewPlayer creates a ship at (x, y) constrained horizontally by bounds.
// The display is told the starting lives immediately; nil means no display.
func NewPlayer(x, y float64, bounds Bounds, display LivesDisplay) *Player {
	if display == nil {
		display = nopLivesDisplay{}
	}
	p := &Player{
		X:          bounds.ClampX(x),
		Y:          y,
		Lives:      PlayerInitialLives,
		Speed:      PlayerSpeed,
		ShootDelay: PlayerShootDelay,
		bounds:     bounds,
		display:    display,
	}
	display.SetLives(p.Lives)
	return p
}

// Update handles invulnerability, the shot cooldown and horizontal movement.
func (p *Player) Update(in Controls, dt float64) {
	if in == nil {
		in = NoControls{}
	}

	if p.invulnerable {
		p.invulnerableTime -= dt
		if p.invulnerableTime <= 0 {
			p.invulnerable = false
			p.visual = VisualNormal
		} else if int(math.Floor(p.invulnerableTime*PlayerBlinkFrequency))%2 == 0 {
			p.visual = VisualAlert
		} else {
			p.visual = VisualNormal
		}
	}

	if p.shootCooldown > 0 {
		p.shootCooldown -= dt
	}

	// Right is checked last and wins when both are held.
	moveX := 0.0
	if in.IsLeftPressed() {
		moveX = -1
	}
	if in.IsRightPressed() {
		moveX = 1
	}

	p.X += moveX * p.Speed * dt
	p.X = p.bounds.ClampX(p.X)
}

// CanShoot reports whether the cooldown has expired.
func (p *Player) CanShoot() bool {
	return p.shootCooldown <= 0
}

// Shoot fires a projectile upward, or returns nil while cooling down.
func (p *Player) Shoot() *Projectile {
	if !p.CanShoot() {
		return nil
	}
	p.shootCooldown = p.ShootDelay
	return NewProjectile(p.X, p.Y+PlayerMuzzleOffset, true)
}

// TakeDamage removes a life unless the ship is invulnerable. A surviving ship
// becomes invulnerable for InvulnerableSeconds. Returns true if a life was lost.
func (p *Player) TakeDamage() bool {
	if p.invulnerable || p.Lives <= 0 {
		return false
	}

	p.Lives--
	p.display.SetLives(p.Lives)

	if p.Lives > 0 {
		p.invulnerable = true
		p.invulnerableTime = InvulnerableSeconds
	}
	return true
}

// Invulnerable reports whether damage is currently ignored.
func (p *Player) Invulnerable() bool {
	return p.invulnerable
}

// InvulnerableTime returns the seconds of invulnerability left.
func (p *Player) InvulnerableTime() float64 {
	return p.invulnerableTime
}

// Visual returns the current blink state for the renderer.
func (p *Player) Visual() Visual {
	return p.visual
}

// GetPosition returns the ship's position.
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}
