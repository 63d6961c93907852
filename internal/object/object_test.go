package object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqRand returns vals in order, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v
}

func constRand(v float64) Rand {
	return RandFunc(func() float64 { return v })
}

var testBounds = Bounds{MinX: -8, MaxX: 8, MinY: -10, MaxY: 8}

type keys struct{ left, right, shoot bool }

func (k keys) IsLeftPressed() bool  { return k.left }
func (k keys) IsRightPressed() bool { return k.right }
func (k keys) IsShootPressed() bool { return k.shoot }

type livesRecorder struct{ values []int }

func (l *livesRecorder) SetLives(n int) { l.values = append(l.values, n) }

func TestRandIntn_Clamps(t *testing.T) {
	require.Equal(t, 0, randIntn(constRand(0), 3))
	require.Equal(t, 1, randIntn(constRand(0.5), 3))
	require.Equal(t, 2, randIntn(constRand(0.999), 3))
	require.Equal(t, 2, randIntn(constRand(1), 3))
	require.Equal(t, 0, randIntn(constRand(-0.1), 3))
}

func TestBounds(t *testing.T) {
	require.True(t, testBounds.BelowField(-12.1))
	require.False(t, testBounds.BelowField(-12))
	require.True(t, testBounds.AboveField(10.1))
	require.False(t, testBounds.AboveField(10))
	require.Equal(t, -8.0, testBounds.ClampX(-9))
	require.Equal(t, 8.0, testBounds.ClampX(100))
	require.Equal(t, 1.5, testBounds.ClampX(1.5))
}

func TestNewPlayer_ShowsLives(t *testing.T) {
	rec := &livesRecorder{}
	p := NewPlayer(0, -8, testBounds, rec)

	require.Equal(t, PlayerInitialLives, p.Lives)
	require.Equal(t, []int{3}, rec.values)
	require.True(t, p.CanShoot())
	require.False(t, p.Invulnerable())
	require.Equal(t, VisualNormal, p.Visual())
}

func TestPlayer_Movement(t *testing.T) {
	p := NewPlayer(0, -8, testBounds, nil)

	p.Update(keys{right: true}, 0.5)
	require.InDelta(t, 4.0, p.X, 1e-9)

	p.Update(keys{left: true}, 0.25)
	require.InDelta(t, 2.0, p.X, 1e-9)

	// Right wins when both are held.
	p.Update(keys{left: true, right: true}, 0.25)
	require.InDelta(t, 4.0, p.X, 1e-9)

	p.Update(keys{right: true}, 10)
	require.Equal(t, 8.0, p.X)

	p.Update(keys{left: true}, 10)
	require.Equal(t, -8.0, p.X)
	require.Equal(t, -8.0, p.Y)

	p.Update(nil, 1)
	require.Equal(t, -8.0, p.X)
}

func TestPlayer_StaysInBounds(t *testing.T) {
	p := NewPlayer(0, -8, testBounds, nil)
	inputs := []keys{{left: true}, {right: true}, {left: true, right: true}, {}}

	for i := 0; i < 1000; i++ {
		dt := float64(i%23) * 0.07
		p.Update(inputs[(i/7)%len(inputs)], dt)
		require.GreaterOrEqual(t, p.X, testBounds.MinX)
		require.LessOrEqual(t, p.X, testBounds.MaxX)
	}
}

func TestPlayer_ShootCooldown(t *testing.T) {
	p := NewPlayer(1, -8, testBounds, nil)

	shot := p.Shoot()
	require.NotNil(t, shot)
	require.True(t, shot.FromPlayer)
	require.Equal(t, 1.0, shot.X)
	require.Equal(t, -7.5, shot.Y)

	require.False(t, p.CanShoot())
	require.Nil(t, p.Shoot())

	p.Update(nil, 0.1)
	require.False(t, p.CanShoot())

	p.Update(nil, 0.2)
	require.True(t, p.CanShoot())
	require.NotNil(t, p.Shoot())
}

func TestPlayer_TakeDamage(t *testing.T) {
	rec := &livesRecorder{}
	p := NewPlayer(0, -8, testBounds, rec)

	require.True(t, p.TakeDamage())
	require.Equal(t, 2, p.Lives)
	require.True(t, p.Invulnerable())
	require.Equal(t, InvulnerableSeconds, p.InvulnerableTime())

	// Ignored while invulnerable.
	require.False(t, p.TakeDamage())
	require.Equal(t, 2, p.Lives)

	p.Update(nil, 2.0)
	require.False(t, p.Invulnerable())
	require.Equal(t, VisualNormal, p.Visual())

	require.True(t, p.TakeDamage())
	p.Update(nil, 2.1)
	require.True(t, p.TakeDamage())
	require.Equal(t, 0, p.Lives)
	require.False(t, p.Invulnerable())

	// Lives never go below zero.
	require.False(t, p.TakeDamage())
	require.Equal(t, 0, p.Lives)
	require.Equal(t, []int{3, 2, 1, 0}, rec.values)
}

func TestPlayer_Blink(t *testing.T) {
	p := NewPlayer(0, -8, testBounds, nil)
	p.TakeDamage()

	// 1.99s left: floor(19.9) is odd.
	p.Update(nil, 0.01)
	require.Equal(t, VisualNormal, p.Visual())

	// 1.89s left: floor(18.9) is even.
	p.Update(nil, 0.1)
	require.Equal(t, VisualAlert, p.Visual())

	p.Update(nil, 5)
	require.Equal(t, VisualNormal, p.Visual())
	require.False(t, p.Invulnerable())
}

func TestNewEnemy_KindAndPattern(t *testing.T) {
	require.Equal(t, EnemyBasic, NewEnemy(0, 0, 0, constRand(0.1)).Kind)
	require.Equal(t, EnemyMedium, NewEnemy(0, 0, 4, constRand(0.1)).Kind)
	require.Equal(t, EnemyStrong, NewEnemy(0, 0, -1, constRand(0.1)).Kind)

	require.Equal(t, PatternZigzag, NewEnemy(0, 0, 0, constRand(0.1)).Pattern())
	require.Equal(t, PatternSine, NewEnemy(0, 0, 0, constRand(0.5)).Pattern())
	require.Equal(t, PatternDiagonal, NewEnemy(0, 0, 0, constRand(0.9)).Pattern())

	e := NewEnemy(2, 3, 2, constRand(0.1))
	require.Equal(t, 0.6, e.Size())
	require.Equal(t, EnemySpeed, e.Speed)
	require.Zero(t, e.ShootCooldown())
}

func TestEnemy_Zigzag(t *testing.T) {
	e := NewEnemy(7.9, 5, 0, constRand(0))

	e.Update(0.1)
	require.InDelta(t, 8.1, e.X, 1e-9)
	require.InDelta(t, 4.5, e.Y, 1e-9)

	e.Update(0.1)
	require.InDelta(t, 7.9, e.X, 1e-9)
	require.InDelta(t, 4.5, e.Y, 1e-9)
	require.InDelta(t, 0.2, e.PatternTime(), 1e-9)
}

func TestEnemy_Sine(t *testing.T) {
	e := NewEnemy(5, 5, 0, constRand(0.5))

	e.Update(0.5)
	require.InDelta(t, 4.7, e.Y, 1e-9)
	require.InDelta(t, math.Sin(1)*3, e.X, 1e-9)
}

func TestEnemy_Diagonal(t *testing.T) {
	e := NewEnemy(1, 5, 0, constRand(0.9))

	e.Update(0.5)
	require.InDelta(t, 4.5, e.Y, 1e-9)
	require.InDelta(t, 1+math.Cos(0.5)*2*0.5, e.X, 1e-9)
}

func TestEnemy_Shoot(t *testing.T) {
	e := NewEnemy(2, 4, 0, constRand(0.5))

	require.Nil(t, e.Shoot(constRand(0.03)))

	shot := e.Shoot(&seqRand{vals: []float64{0.02, 0.5}})
	require.NotNil(t, shot)
	require.False(t, shot.FromPlayer)
	require.Equal(t, 2.0, shot.X)
	require.Equal(t, 3.5, shot.Y)
	require.InDelta(t, 3.0, e.ShootCooldown(), 1e-9)

	// Cooling down, even with a winning roll.
	require.Nil(t, e.Shoot(constRand(0)))

	e.Update(3)
	require.NotNil(t, e.Shoot(constRand(0)))
}

func TestEnemy_Escaped(t *testing.T) {
	e := NewEnemy(0, -12, 0, constRand(0.5))
	require.False(t, e.Escaped(testBounds))

	e.Y = -12.01
	require.True(t, e.Escaped(testBounds))
}

func TestProjectile_Update(t *testing.T) {
	up := NewProjectile(0, 0, true)
	up.Update(0.1)
	require.InDelta(t, 1.5, up.Y, 1e-9)

	down := NewProjectile(0, 0, false)
	down.Update(0.1)
	require.InDelta(t, -1.5, down.Y, 1e-9)
}

func TestProjectile_OutOfField(t *testing.T) {
	p := NewProjectile(0, 10, true)
	require.False(t, p.OutOfField(testBounds))

	p.Y = 10.01
	require.True(t, p.OutOfField(testBounds))

	p.Y = -12.01
	require.True(t, p.OutOfField(testBounds))
}

func TestSpawnSystem_SpawnEnemy(t *testing.T) {
	s := NewSpawnSystem(testBounds, &seqRand{vals: []float64{0.25, 0.9, 0.5}})

	e := s.SpawnEnemy()
	require.InDelta(t, -4.0, e.X, 1e-9)
	require.Equal(t, 8.0, e.Y)
	require.Equal(t, EnemyStrong, e.Kind)
	require.Equal(t, PatternSine, e.Pattern())
}

func TestSpawnSystem_StaysOnTopEdge(t *testing.T) {
	for _, v := range []float64{0, 0.5, 0.999} {
		e := NewSpawnSystem(testBounds, constRand(v)).SpawnEnemy()
		require.GreaterOrEqual(t, e.X, testBounds.MinX)
		require.Less(t, e.X, testBounds.MaxX)
		require.Equal(t, testBounds.MaxY, e.Y)
	}
}
