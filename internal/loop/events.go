package loop

import "github.com/tomz197/spacedefender/internal/object"

// HUD receives the values shown around the playfield. Every call sets the
// displayed value outright.
type HUD interface {
	SetScore(score int)
	SetLives(lives int)
	SetGameOver(visible bool)
}

// NopHUD discards all HUD updates.
type NopHUD struct{}

func (NopHUD) SetScore(int)     {}
func (NopHUD) SetLives(int)     {}
func (NopHUD) SetGameOver(bool) {}

// EventType identifies what happened to an entity during a frame.
type EventType int

const (
	EventEnemyDestroyed    EventType = iota // Enemy shot down by the player
	EventEnemyCrashed                       // Enemy rammed the player and is gone
	EventEnemyEscaped                       // Enemy left the bottom of the field
	EventEnemySpawned                       // Replacement enemy entered at the top
	EventProjectileFired                    // New projectile from the player or an enemy
	EventProjectileRemoved                  // Projectile hit something or left the field
	EventPlayerDamaged                      // Player lost a life
	EventGameOver                           // Scene entered StateGameOver
	EventRestarted                          // All entities were disposed and a new game began
)

// Event describes one entity change. Entity pointers are valid for reading
// during HandleEvent; removed entities are no longer owned by the scene.
type Event struct {
	Type       EventType
	X, Y       float64
	Enemy      *object.Enemy
	Projectile *object.Projectile
	Score      int // Score after the event
	Lives      int // Lives after the event
}

// Listener is notified of entity changes, in the order they happen.
type Listener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

// HandleEvent calls f.
func (f ListenerFunc) HandleEvent(ev Event) {
	f(ev)
}

// NopListener ignores all events.
type NopListener struct{}

func (NopListener) HandleEvent(Event) {}
