package object

// SpawnSystem creates replacement enemies along the top edge.
type SpawnSystem struct {
	bounds Bounds
	rng    Rand
}

// NewSpawnSystem creates a spawner for the given playfield.
func NewSpawnSystem(bounds Bounds, rng Rand) *SpawnSystem {
	if rng == nil {
		rng = DefaultRand
	}
	return &SpawnSystem{
		bounds: bounds,
		rng:    rng,
	}
}

// SpawnEnemy returns a new enemy at a random x on the top edge with a random kind.
// Its movement pattern is drawn independently by NewEnemy.
func (s *SpawnSystem) SpawnEnemy() *Enemy {
	x := s.rng.Float64()*(s.bounds.MaxX-s.bounds.MinX) + s.bounds.MinX
	y := s.bounds.MaxY
	kind := randIntn(s.rng, 3)

	return NewEnemy(x, y, kind, s.rng)
}
