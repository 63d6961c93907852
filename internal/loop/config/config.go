// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Maximum render area; larger terminals get a centered, bordered playfield.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 40
)

// Scoreboard
const (
	TopScoreCount     = 10 // Entries kept on the high-score table
	TopScoresOnScreen = 5  // Entries listed on the start and game-over screens
)

// Particles
const (
	ExplosionParticles = 12
	ExplosionSpeed     = 6.0 // World units per second
	ExplosionLifetime  = 0.5 // Seconds
	HitParticles       = 20
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWaitTimeout    = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
