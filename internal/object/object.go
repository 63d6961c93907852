// Package object holds the gameplay entities: the player ship, enemies and
// projectiles. Entities are pure state; rendering reads their positions.
package object

import "math/rand"

// Controls is the input collaborator sampled once per frame.
// The signals are levels, not edges.
type Controls interface {
	IsLeftPressed() bool
	IsRightPressed() bool
	IsShootPressed() bool
}

// NoControls is a Controls with nothing pressed.
type NoControls struct{}

func (NoControls) IsLeftPressed() bool  { return false }
func (NoControls) IsRightPressed() bool { return false }
func (NoControls) IsShootPressed() bool { return false }

// Rand is the single source of randomness for gameplay.
// Float64 returns a value in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// RandFunc adapts a plain function to Rand.
type RandFunc func() float64

// Float64 calls f.
func (f RandFunc) Float64() float64 {
	return f()
}

// DefaultRand draws from the math/rand global source.
var DefaultRand Rand = RandFunc(rand.Float64)

// randIntn returns a uniform integer in [0, n) from a Float64 draw.
func randIntn(rng Rand, n int) int {
	v := int(rng.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Positioned is anything with a plane position (z is ignored).
type Positioned interface {
	GetPosition() (x, y float64)
}

// Bounds is the playfield rectangle, fixed for a session.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ExitMargin is how far past the vertical bounds an entity may travel
// before it is removed.
const ExitMargin = 2.0

// BelowField reports whether y has left the playfield at the bottom.
func (b Bounds) BelowField(y float64) bool {
	return y < b.MinY-ExitMargin
}

// AboveField reports whether y has left the playfield at the top.
func (b Bounds) AboveField(y float64) bool {
	return y > b.MaxY+ExitMargin
}

// ClampX clamps x to [MinX, MaxX].
func (b Bounds) ClampX(x float64) float64 {
	if x < b.MinX {
		return b.MinX
	}
	if x > b.MaxX {
		return b.MaxX
	}
	return x
}

// LivesDisplay receives the player's lives whenever they change.
type LivesDisplay interface {
	SetLives(lives int)
}

type nopLivesDisplay struct{}

func (nopLivesDisplay) SetLives(int) {}
