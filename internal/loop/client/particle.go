package client

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/tomz197/spacedefender/internal/object"
)

// particlePool reuses Particle values across explosions.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect in world coordinates.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60s (1.0 = no drag)
}

func newParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.95,
	}
	return p
}

// release returns the particle to the pool.
func (p *Particle) release() {
	particlePool.Put(p)
}

// update advances the particle and reports whether it expired.
func (p *Particle) update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	drag := math.Pow(p.Drag, dt*60)
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// visible is false for the last quarter of the lifetime.
func (p *Particle) visible() bool {
	return p.MaxLifetime <= 0 || p.Lifetime/p.MaxLifetime >= 0.25
}

// popup is floating text, e.g. points for a kill.
type popup struct {
	X, Y     float64
	Text     string
	Lifetime float64
}

const (
	popupLifetime = 0.6 // Seconds
	popupRise     = 2.0 // World units per second
)

// effects owns everything drawn on top of the scene that the game itself
// does not track.
type effects struct {
	rng       object.Rand
	particles []*Particle
	popups    []popup
}

// newEffects uses rng for every effect roll. A nil rng gets a private
// source so effects never consume gameplay randomness.
func newEffects(rng object.Rand) *effects {
	if rng == nil {
		src := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		rng = object.RandFunc(src.Float64)
	}
	return &effects{rng: rng}
}

// explode spawns count particles in a circular burst.
func (e *effects) explode(x, y float64, count int, speed, lifetime float64) {
	for i := 0; i < count; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + e.rng.Float64())         // 50% to 150%
		life := lifetime * (0.5 + e.rng.Float64()*0.5) // 50% to 100%
		e.particles = append(e.particles, newParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
}

func (e *effects) addPopup(x, y float64, text string) {
	e.popups = append(e.popups, popup{X: x, Y: y, Text: text, Lifetime: popupLifetime})
}

func (e *effects) update(dt float64) {
	e.particles = slices.DeleteFunc(e.particles, func(p *Particle) bool {
		if p.update(dt) {
			p.release()
			return true
		}
		return false
	})

	for i := range e.popups {
		e.popups[i].Lifetime -= dt
		e.popups[i].Y += popupRise * dt
	}
	e.popups = slices.DeleteFunc(e.popups, func(p popup) bool {
		return p.Lifetime <= 0
	})
}

func (e *effects) clear() {
	for _, p := range e.particles {
		p.release()
	}
	e.particles = e.particles[:0]
	e.popups = e.popups[:0]
}
