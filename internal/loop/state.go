package loop

import (
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/object"
)

// State is the scene's phase.
type State int

const (
	StateRunning  State = iota // Frames advance the simulation
	StateGameOver              // Frozen until Restart
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Options configures a Scene. Zero values fall back to defaults and no-op
// collaborators.
type Options struct {
	Settings *config.Settings // nil uses config.DefaultSettings()
	HUD      HUD
	Listener Listener
	Rand     object.Rand
}

// Scene owns every entity of one game session and advances them frame by
// frame. It is not safe for concurrent use; the frame goroutine owns it.
type Scene struct {
	settings config.Settings
	bounds   object.Bounds
	rng      object.Rand
	hud      HUD
	listener Listener

	state       State
	player      *object.Player
	enemies     []*object.Enemy      // Live enemies in creation order
	projectiles []*object.Projectile // Live projectiles in creation order
	score       *ScoreManager
	spawner     *object.SpawnSystem
}

// NewScene validates the settings and starts a game with the opening formation.
func NewScene(opts Options) (*Scene, error) {
	settings := config.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	hud := opts.HUD
	if hud == nil {
		hud = NopHUD{}
	}
	listener := opts.Listener
	if listener == nil {
		listener = NopListener{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = object.DefaultRand
	}

	s := &Scene{
		settings: settings,
		bounds:   settings.Bounds(),
		rng:      rng,
		hud:      hud,
		listener: listener,
	}
	s.spawner = object.NewSpawnSystem(s.bounds, rng)
	s.score = NewScoreManager(hud)
	s.startGame()
	return s, nil
}

// startGame creates the player and the formation and enters StateRunning.
func (s *Scene) startGame() {
	s.enemies = s.enemies[:0]
	s.projectiles = s.projectiles[:0]
	s.player = object.NewPlayer((s.bounds.MinX+s.bounds.MaxX)/2, s.settings.PlayerStartY, s.bounds, s.hud)
	s.spawnFormation()
	s.hud.SetGameOver(false)
	s.state = StateRunning
}

// spawnFormation lays out the opening grid centered on x = 0. The row index
// sets the enemy kind.
func (s *Scene) spawnFormation() {
	rows := s.settings.FormationRows
	cols := s.settings.FormationCols
	spacing := s.settings.FormationSpacing
	startX := -float64(cols-1) * spacing / 2

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := startX + float64(col)*spacing
			y := s.settings.FormationTopY - float64(row)*s.settings.FormationRowStep
			s.enemies = append(s.enemies, object.NewEnemy(x, y, row, s.rng))
		}
	}
}

// State returns the current phase.
func (s *Scene) State() State {
	return s.state
}

// Player returns the player ship.
func (s *Scene) Player() *object.Player {
	return s.player
}

// Enemies returns the live enemies. The slice is owned by the scene and is
// only valid until the next Step or Restart.
func (s *Scene) Enemies() []*object.Enemy {
	return s.enemies
}

// Projectiles returns the live projectiles, with the same ownership rules as Enemies.
func (s *Scene) Projectiles() []*object.Projectile {
	return s.projectiles
}

// Score returns the current score.
func (s *Scene) Score() int {
	return s.score.Score()
}

// Bounds returns the playfield.
func (s *Scene) Bounds() object.Bounds {
	return s.bounds
}

// Settings returns the session's settings.
func (s *Scene) Settings() config.Settings {
	return s.settings
}
