package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/input"
	"github.com/tomz197/spacedefender/internal/loop"
	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/object"
)

// Client handles rendering and input for a single connection and runs that
// connection's game.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	scene        *loop.Scene
	hud          *hud
	effects      *effects
	field        playfield
	styles       styles
	canvas       *draw.Canvas
	frame        *draw.Frame
	stars        []draw.Point // Background, in world coordinates
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Settings     *config.Settings // nil uses the defaults
	Logger       *log.Logger      // nil discards
	Rand         object.Rand      // Gameplay rolls; nil uses math/rand
	EffectsRand  object.Rand      // Particles and stars; nil uses a private source
}

var _ loop.Listener = (*Client)(nil)

// NewClient registers with the server and prepares a game for the session.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle, err := gs.RegisterClient(opts.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to join server: %w", err)
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		hud:          &hud{},
		effects:      newEffects(opts.EffectsRand),
		styles:       newStyles(renderer),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		logger:       logger.With("session", handle.ID),
	}

	scene, err := loop.NewScene(loop.Options{
		Settings: opts.Settings,
		HUD:      c.hud,
		Listener: c,
		Rand:     opts.Rand,
	})
	if err != nil {
		gs.UnregisterClient(handle.ID)
		return nil, err
	}
	c.scene = scene
	c.field = newPlayfield(scene.Bounds(), config.ViewWidth, config.ViewHeight)
	c.stars = newStarfield(c.effects.rng, scene.Bounds())
	c.state.TopScores = gs.TopScores(config.TopScoresOnScreen)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	c.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.frame = draw.NewFrame(w, c.canvas)

	if r != nil {
		c.inputStream = input.StartStream(r)
	}
	return c, nil
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	defer c.server.UnregisterClient(c.handle.ID)

	if err := c.frame.Open(); err != nil {
		return err
	}
	defer c.frame.Close()

	c.logger.Debug("client started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// update advances the current screen by one frame.
func (c *Client) update() {
	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateOver:
		c.updateOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// processInput reads this frame's keys and handles quitting and inactivity.
func (c *Client) processInput() {
	if c.inputStream == nil {
		return
	}
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Closed {
		c.state.Running = false
		return
	}

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventScoreboardChanged:
				c.state.TopScores = c.server.TopScores(config.TopScoresOnScreen)
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.frame.Clear()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState waits for the fire key.
func (c *Client) updateStartState() {
	if c.state.Input.Shoot {
		c.startGame()
	}
}

// updatePlayingState advances the game by the measured frame time.
func (c *Client) updatePlayingState() {
	c.scene.Step(c.state.delta, c.state.Input)
	c.effects.update(c.state.delta.Seconds())
}

// updateOverState lets the last explosions play out and waits for restart.
func (c *Client) updateOverState() {
	c.effects.update(c.state.delta.Seconds())
	if c.state.Input.Restart {
		c.startGame()
	}
}

// startGame starts a fresh game.
func (c *Client) startGame() {
	if c.inputStream != nil {
		input.ResetKeyInput(c.inputStream)
	}
	c.scene.Restart()
	c.state.GameState = GameStatePlaying
	c.state.LastRank = 0
}

// finishGame reports the final score and shows the game-over screen.
func (c *Client) finishGame(score int) {
	c.state.FinalScore = score
	c.state.LastRank = c.server.ReportScore(c.handle.ID, score)
	c.state.TopScores = c.server.TopScores(config.TopScoresOnScreen)
	c.state.GameState = GameStateOver
	c.logger.Info("game over", "score", score, "rank", c.state.LastRank)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// HandleEvent turns scene events into effects and score reports.
func (c *Client) HandleEvent(ev loop.Event) {
	switch ev.Type {
	case loop.EventEnemyDestroyed:
		c.effects.explode(ev.X, ev.Y, config.ExplosionParticles, config.ExplosionSpeed, config.ExplosionLifetime)
		c.effects.addPopup(ev.X, ev.Y, fmt.Sprintf("+%d", c.scene.Settings().KillScore))
	case loop.EventEnemyCrashed:
		c.effects.explode(ev.X, ev.Y, config.ExplosionParticles, config.ExplosionSpeed, config.ExplosionLifetime)
	case loop.EventPlayerDamaged:
		c.effects.explode(ev.X, ev.Y, config.HitParticles, config.ExplosionSpeed, config.ExplosionLifetime)
		c.logger.Debug("player hit", "lives", ev.Lives)
	case loop.EventGameOver:
		c.finishGame(ev.Score)
	case loop.EventRestarted:
		c.effects.clear()
	}
}
