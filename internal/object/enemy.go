package object

import "math"

// EnemyKind is the cosmetic enemy class. Kinds share identical stats.
type EnemyKind int

const (
	EnemyBasic  EnemyKind = 0
	EnemyMedium EnemyKind = 1
	EnemyStrong EnemyKind = 2
)

// Display sizes for each kind (renderer only).
var enemySizes = map[EnemyKind]float64{
	EnemyBasic:  0.4,
	EnemyMedium: 0.5,
	EnemyStrong: 0.6,
}

// MovementPattern is one of the fixed parametric trajectories.
type MovementPattern int

const (
	PatternZigzag   MovementPattern = iota // Sweep sideways, step down at the edges
	PatternSine                            // Slow descent on a sine path
	PatternDiagonal                        // Descent with cosine drift
)

const numPatterns = 3

// Enemy tuning.
const (
	EnemySpeed          = 2.0
	EnemyZigzagLimit    = 8.0 // |x| beyond which a zigzag enemy turns around
	EnemyZigzagDrop     = 0.5
	EnemySineAmplitude  = 3.0
	EnemySineFrequency  = 2.0
	EnemyFireChance     = 0.02 // Per Shoot call, after the cooldown gate
	EnemyCooldownMin    = 2.0
	EnemyCooldownSpread = 2.0
	EnemyMuzzleOffset   = 0.5
)

// Enemy is a hostile ship following one movement pattern for its lifetime.
type Enemy struct {
	X, Y  float64   // Position
	Kind  EnemyKind // Cosmetic class
	Speed float64

	pattern       MovementPattern // Fixed at construction
	direction     float64         // Zigzag heading, +1 or -1
	patternTime   float64         // Seconds since construction
	shootCooldown float64
}

// NewEnemy creates an enemy at (x, y). The kind follows the formation row
// (row mod 3); the movement pattern is drawn uniformly from rng.
func NewEnemy(x, y float64, row int, rng Rand) *Enemy {
	if rng == nil {
		rng = DefaultRand
	}
	kind := row % 3
	if kind < 0 {
		kind += 3
	}
	return &Enemy{
		X:         x,
		Y:         y,
		Kind:      EnemyKind(kind),
		Speed:     EnemySpeed,
		pattern:   MovementPattern(randIntn(rng, numPatterns)),
		direction: 1,
	}
}

// Pattern returns the enemy's movement pattern.
func (e *Enemy) Pattern() MovementPattern {
	return e.pattern
}

// PatternTime returns the seconds elapsed on the pattern.
func (e *Enemy) PatternTime() float64 {
	return e.patternTime
}

// Size returns the display size for the enemy's kind.
func (e *Enemy) Size() float64 {
	return enemySizes[e.Kind]
}

// Update advances the pattern clock, the cooldown and the position.
func (e *Enemy) Update(dt float64) {
	e.patternTime += dt
	e.shootCooldown -= dt

	switch e.pattern {
	case PatternZigzag:
		e.X += e.direction * e.Speed * dt
		if math.Abs(e.X) > EnemyZigzagLimit {
			e.direction *= -1
			e.Y -= EnemyZigzagDrop
		}
	case PatternSine:
		e.Y -= e.Speed * 0.3 * dt
		e.X = math.Sin(e.patternTime*EnemySineFrequency) * EnemySineAmplitude
	case PatternDiagonal:
		e.Y -= e.Speed * 0.5 * dt
		e.X += math.Cos(e.patternTime) * e.Speed * dt
	}
}

// Shoot fires downward when the cooldown has expired and a EnemyFireChance
// roll succeeds. Both gates must pass; otherwise it returns nil.
func (e *Enemy) Shoot(rng Rand) *Projectile {
	if e.shootCooldown > 0 {
		return nil
	}
	if rng == nil {
		rng = DefaultRand
	}
	if rng.Float64() > EnemyFireChance {
		return nil
	}

	e.shootCooldown = EnemyCooldownMin + rng.Float64()*EnemyCooldownSpread
	return NewProjectile(e.X, e.Y-EnemyMuzzleOffset, false)
}

// ShootCooldown returns the seconds until the enemy may fire again.
func (e *Enemy) ShootCooldown() float64 {
	return e.shootCooldown
}

// Escaped reports whether the enemy has left the bottom of the field.
func (e *Enemy) Escaped(b Bounds) bool {
	return b.BelowField(e.Y)
}

// GetPosition returns the enemy's position.
func (e *Enemy) GetPosition() (float64, float64) {
	return e.X, e.Y
}
