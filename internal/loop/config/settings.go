package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tomz197/spacedefender/internal/object"
)

// ErrInvalidSettings is returned for settings the game cannot run with.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the per-session gameplay parameters. They are fixed once a
// session starts.
type Settings struct {
	MinX float64 `toml:"min_x"`
	MaxX float64 `toml:"max_x"`
	MinY float64 `toml:"min_y"`
	MaxY float64 `toml:"max_y"`

	FormationRows    int     `toml:"formation_rows"`
	FormationCols    int     `toml:"formation_cols"`
	FormationSpacing float64 `toml:"formation_spacing"`
	FormationTopY    float64 `toml:"formation_top_y"`
	FormationRowStep float64 `toml:"formation_row_step"`

	PlayerStartY float64 `toml:"player_start_y"`

	KillScore          int     `toml:"kill_score"`
	ReplenishThreshold int     `toml:"replenish_threshold"` // Spawn only while fewer enemies are alive
	SpawnChance        float64 `toml:"spawn_chance"`        // Per frame, while below the threshold
	EnemyShootChance   float64 `toml:"enemy_shoot_chance"`  // Per enemy per frame, before the enemy's own gate
}

// DefaultSettings returns the classic layout: a 3x8 formation on a 16x18 field.
func DefaultSettings() Settings {
	return Settings{
		MinX: -8,
		MaxX: 8,
		MinY: -10,
		MaxY: 8,

		FormationRows:    3,
		FormationCols:    8,
		FormationSpacing: 2,
		FormationTopY:    6,
		FormationRowStep: 1.5,

		PlayerStartY: -8,

		KillScore:          100,
		ReplenishThreshold: 5,
		SpawnChance:        0.01,
		EnemyShootChance:   0.001,
	}
}

// Bounds returns the playfield rectangle.
func (s Settings) Bounds() object.Bounds {
	return object.Bounds{MinX: s.MinX, MaxX: s.MaxX, MinY: s.MinY, MaxY: s.MaxY}
}

// FormationSize returns the number of enemies in the opening formation.
func (s Settings) FormationSize() int {
	return s.FormationRows * s.FormationCols
}

// Validate checks that the settings describe a playable field.
func (s Settings) Validate() error {
	if s.MinX >= s.MaxX {
		return fmt.Errorf("%w: min_x %v must be less than max_x %v", ErrInvalidSettings, s.MinX, s.MaxX)
	}
	if s.MinY >= s.MaxY {
		return fmt.Errorf("%w: min_y %v must be less than max_y %v", ErrInvalidSettings, s.MinY, s.MaxY)
	}
	if s.FormationRows < 0 || s.FormationCols < 0 {
		return fmt.Errorf("%w: formation %dx%d", ErrInvalidSettings, s.FormationRows, s.FormationCols)
	}
	if s.KillScore < 0 {
		return fmt.Errorf("%w: kill_score %d is negative", ErrInvalidSettings, s.KillScore)
	}
	for name, p := range map[string]float64{
		"spawn_chance":       s.SpawnChance,
		"enemy_shoot_chance": s.EnemyShootChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %s %v outside [0, 1]", ErrInvalidSettings, name, p)
		}
	}
	return nil
}

// LoadSettings reads a TOML file over the defaults. An empty path returns the
// defaults. Keys the file sets but Settings does not know are an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
