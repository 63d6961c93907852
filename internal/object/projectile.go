package object

// Projectile is a shot travelling straight up (player) or down (enemy).
type Projectile struct {
	X, Y       float64 // Position
	FromPlayer bool    // Direction is +y when true, -y otherwise
	Speed      float64 // Units per second
}

// ProjectileSpeed is the speed of every projectile.
const ProjectileSpeed = 15.0

// NewProjectile creates a projectile at (x, y).
func NewProjectile(x, y float64, fromPlayer bool) *Projectile {
	return &Projectile{
		X:          x,
		Y:          y,
		FromPlayer: fromPlayer,
		Speed:      ProjectileSpeed,
	}
}

// Update moves the projectile along y.
func (p *Projectile) Update(dt float64) {
	if p.FromPlayer {
		p.Y += p.Speed * dt
	} else {
		p.Y -= p.Speed * dt
	}
}

// OutOfField reports whether the projectile has left the vertical bounds.
func (p *Projectile) OutOfField(b Bounds) bool {
	return b.AboveField(p.Y) || b.BelowField(p.Y)
}

// GetPosition returns the projectile's position.
func (p *Projectile) GetPosition() (float64, float64) {
	return p.X, p.Y
}
