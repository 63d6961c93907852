package client

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/object"
	"github.com/tomz197/spacedefender/internal/scoreboard"
)

// half makes every roll 0.5: sine movement, no enemy fire, no spawns.
var half = object.RandFunc(func() float64 { return 0.5 })

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T) (*Client, *server.Server, *bytes.Buffer) {
	t.Helper()
	srv := server.NewServer(scoreboard.New(config.TopScoreCount), log.New(io.Discard))
	var out bytes.Buffer
	c, err := NewClient(srv, nil, &out, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
		Username:     "tester",
		Rand:         half,
		EffectsRand:  half,
	})
	require.NoError(t, err)
	return c, srv, &out
}

func TestNewClient_RegistersSession(t *testing.T) {
	c, srv, _ := newTestClient(t)

	require.Equal(t, 1, srv.Players())
	require.Equal(t, GameStateStart, c.state.GameState)
	require.Len(t, c.scene.Enemies(), 24)
}

func TestNewClient_InvalidSettings(t *testing.T) {
	srv := server.NewServer(scoreboard.New(1), log.New(io.Discard))
	settings := config.DefaultSettings()
	settings.MinX, settings.MaxX = 5, -5

	_, err := NewClient(srv, nil, io.Discard, ClientOptions{
		TermSizeFunc: fixedSize(80, 24),
		Settings:     &settings,
	})
	require.ErrorIs(t, err, config.ErrInvalidSettings)
	require.Zero(t, srv.Players())
}

func TestStartScreen_FireStartsGame(t *testing.T) {
	c, _, _ := newTestClient(t)

	c.update()
	require.Equal(t, GameStateStart, c.state.GameState)

	c.state.Input = input.Input{Shoot: true}
	c.update()
	require.Equal(t, GameStatePlaying, c.state.GameState)
	require.Equal(t, loop.StateRunning, c.scene.State())
	require.Equal(t, 3, c.hud.lives)
	require.Zero(t, c.hud.score)
}

func TestPlaying_StepsScene(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.startGame()

	c.state.Input = input.Input{Right: true}
	c.state.delta = 100 * time.Millisecond
	c.update()

	x, _ := c.scene.Player().GetPosition()
	require.InDelta(t, 0.8, x, 1e-9)
}

func TestGameOver_ReportsScore(t *testing.T) {
	c, srv, _ := newTestClient(t)
	c.startGame()

	c.HandleEvent(loop.Event{Type: loop.EventGameOver, Score: 700})

	require.Equal(t, GameStateOver, c.state.GameState)
	require.Equal(t, 700, c.state.FinalScore)
	require.Equal(t, 1, c.state.LastRank)
	require.Len(t, c.state.TopScores, 1)
	require.Equal(t, "tester", srv.TopScores(1)[0].Username)
}

func TestGameOver_RestartKey(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.startGame()
	c.HandleEvent(loop.Event{Type: loop.EventGameOver, Score: 0})

	c.state.Input = input.Input{Shoot: true}
	c.update()
	require.Equal(t, GameStateOver, c.state.GameState)

	c.state.Input = input.Input{Restart: true}
	c.update()
	require.Equal(t, GameStatePlaying, c.state.GameState)
	require.Zero(t, c.state.LastRank)
}

func TestHandleEvent_Effects(t *testing.T) {
	c, _, _ := newTestClient(t)

	c.HandleEvent(loop.Event{Type: loop.EventEnemyDestroyed, X: 1, Y: 2})
	require.Len(t, c.effects.particles, config.ExplosionParticles)
	require.Len(t, c.effects.popups, 1)
	require.Equal(t, "+100", c.effects.popups[0].Text)

	c.HandleEvent(loop.Event{Type: loop.EventPlayerDamaged})
	require.Len(t, c.effects.particles, config.ExplosionParticles+config.HitParticles)

	c.HandleEvent(loop.Event{Type: loop.EventRestarted})
	require.Empty(t, c.effects.particles)
	require.Empty(t, c.effects.popups)
}

func TestHandleEvent_EffectsUseOwnRandomness(t *testing.T) {
	srv := server.NewServer(scoreboard.New(1), log.New(io.Discard))
	rolls := 0
	counting := object.RandFunc(func() float64 {
		rolls++
		return 0.5
	})
	c, err := NewClient(srv, nil, io.Discard, ClientOptions{
		TermSizeFunc: fixedSize(120, 40),
		Rand:         counting,
	})
	require.NoError(t, err)
	before := rolls

	c.HandleEvent(loop.Event{Type: loop.EventEnemyDestroyed})
	c.HandleEvent(loop.Event{Type: loop.EventPlayerDamaged})

	require.NotEmpty(t, c.effects.particles)
	require.Equal(t, before, rolls)
}

func TestNewStarfield_InsidePlayfield(t *testing.T) {
	b := config.DefaultSettings().Bounds()
	i := 0
	steps := object.RandFunc(func() float64 {
		i++
		return float64(i%10) / 10
	})

	stars := newStarfield(steps, b)
	require.Len(t, stars, starCount)
	for _, st := range stars {
		require.GreaterOrEqual(t, st.X, b.MinX-fieldMargin)
		require.Less(t, st.X, b.MaxX+fieldMargin)
		require.GreaterOrEqual(t, st.Y, b.MinY-fieldMargin)
		require.Less(t, st.Y, b.MaxY+fieldMargin)
	}
}

func TestServerShutdown_CountsDown(t *testing.T) {
	c, _, _ := newTestClient(t)
	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}

	c.processServerEvents()
	require.Equal(t, GameStateShutdown, c.state.GameState)
	require.True(t, c.state.Running)

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	c.update()
	require.False(t, c.state.Running)
}

func TestServerEvents_ClosedChannelStops(t *testing.T) {
	c, srv, _ := newTestClient(t)
	srv.UnregisterClient(c.handle.ID)

	c.processServerEvents()
	require.False(t, c.state.Running)
}

func TestDrawFrame_OnlyRepaintsChanges(t *testing.T) {
	c, _, out := newTestClient(t)
	c.startGame()

	require.NoError(t, c.drawFrame())
	first := out.Len()
	require.Contains(t, out.String(), "Score:")
	require.Contains(t, out.String(), "Lives:")

	out.Reset()
	require.NoError(t, c.drawFrame())
	require.Less(t, out.Len(), first)
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(200, 50)
	require.Equal(t, config.MaxTermWidth, w)
	require.Equal(t, config.MaxTermHeight, h)
	require.Equal(t, 40, col)
	require.Equal(t, 5, row)

	w, h, col, row = clampTermSize(80, 24)
	require.Equal(t, []int{80, 24, 0, 0}, []int{w, h, col, row})
}

func TestPlayfield_MapsWorldToCanvas(t *testing.T) {
	b := config.DefaultSettings().Bounds()
	f := newPlayfield(b, config.ViewWidth, config.ViewHeight)

	// 18x20 world units including the margin; height limits the scale.
	require.InDelta(t, 4.0, f.scale, 1e-9)

	top := f.toCanvas(b.MinX-fieldMargin, b.MaxY+fieldMargin)
	require.InDelta(t, 24.0, top.X, 1e-9)
	require.InDelta(t, 0.0, top.Y, 1e-9)

	bottom := f.toCanvas(0, b.MinY)
	require.InDelta(t, 60.0, bottom.X, 1e-9)
	require.InDelta(t, 76.0, bottom.Y, 1e-9)
	require.InDelta(t, 2.0, f.length(0.5), 1e-9)
}

func TestEffects_Expire(t *testing.T) {
	e := newEffects(half)
	e.explode(0, 0, 5, 6, 0.5)
	e.addPopup(0, 0, "+100")

	e.update(0.1)
	require.Len(t, e.particles, 5)
	require.Len(t, e.popups, 1)
	require.InDelta(t, popupRise*0.1, e.popups[0].Y, 1e-9)

	// Lifetime with a 0.5 roll is 0.375s.
	e.update(0.3)
	require.Empty(t, e.particles)

	e.update(1)
	require.Empty(t, e.popups)
}
