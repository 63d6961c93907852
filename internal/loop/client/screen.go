package client

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/object"
	"github.com/tomz197/spacedefender/internal/scoreboard"
)

// styles are the text styles for overlays, bound to the session's renderer.
type styles struct {
	title  lipgloss.Style
	accent lipgloss.Style
	danger lipgloss.Style
	dim    lipgloss.Style
	hud    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		danger: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		hud:    r.NewStyle().Foreground(lipgloss.Color("15")),
	}
}

var titleArt = []string{
	` ___ ___  _   ___ ___   ___  ___ ___ ___ _  _ ___  ___ ___  `,
	`/ __| _ \/_\ / __| __| |   \| __| __| __| \| |   \| __| _ \ `,
	`\__ \  _/ _ \ (__| _|  | |) | _|| _|| _|| .' | |) | _||   / `,
	`|___/_|/_/ \_\___|___| |___/|___|_| |___|_|\_|___/|___|_|_\ `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var controlLines = []string{
	"A D / J L / < >  . . Move",
	"SPACE / ENTER  . .  Shoot",
	"R  . . . . . . .  Restart",
	"Q  . . . . . . . . . Quit",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.frame.Clear()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState != GameStateShutdown {
		c.drawScene()
	}

	c.drawPopups()
	c.drawUI()

	return c.frame.Flush()
}

// drawScene draws the stars, every entity and the particles onto the canvas.
func (c *Client) drawScene() {
	for _, st := range c.stars {
		pt := c.field.toCanvas(st.X, st.Y)
		c.canvas.SetFloat(pt.X, pt.Y)
	}
	for _, e := range c.scene.Enemies() {
		c.drawEnemy(e)
	}
	for _, p := range c.scene.Projectiles() {
		c.drawProjectile(p)
	}
	c.drawPlayer(c.scene.Player())

	for _, p := range c.effects.particles {
		if p.visible() {
			pt := c.field.toCanvas(p.X, p.Y)
			c.canvas.SetFloat(pt.X, pt.Y)
		}
	}
}

// drawPlayer draws an upward triangle; hollow while blinking.
func (c *Client) drawPlayer(p *object.Player) {
	if p == nil {
		return
	}
	x, y := p.GetPosition()
	pts := c.canvas.BorrowPoints(3)
	pts[0] = c.field.toCanvas(x, y+0.6)
	pts[1] = c.field.toCanvas(x-0.5, y-0.4)
	pts[2] = c.field.toCanvas(x+0.5, y-0.4)
	c.canvas.DrawPolygon(pts, p.Visual() == object.VisualNormal)
}

// drawEnemy draws a diamond sized by kind; odd kinds are hollow.
func (c *Client) drawEnemy(e *object.Enemy) {
	x, y := e.GetPosition()
	s := e.Size()
	pts := c.canvas.BorrowPoints(4)
	pts[0] = c.field.toCanvas(x, y+s)
	pts[1] = c.field.toCanvas(x+s, y)
	pts[2] = c.field.toCanvas(x, y-s)
	pts[3] = c.field.toCanvas(x-s, y)
	c.canvas.DrawPolygon(pts, e.Kind%2 == 0)
}

// drawProjectile draws a short streak trailing behind the direction of travel.
func (c *Client) drawProjectile(p *object.Projectile) {
	x, y := p.GetPosition()
	tail := -0.3
	if !p.FromPlayer {
		tail = 0.3
	}
	c.canvas.DrawLine(c.field.toCanvas(x, y), c.field.toCanvas(x, y+tail))
}

// drawPopups places floating text over the playfield.
func (c *Client) drawPopups() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for _, p := range c.effects.popups {
		pt := c.field.toCanvas(p.X, p.Y)
		col, row := c.canvas.LogicalToTerminal(pt.X, pt.Y)
		col -= len(p.Text) / 2
		if row < 1 || row > termHeight || col < 1 || col+len(p.Text) > termWidth {
			continue
		}
		c.frame.Text(col, row, c.styles.accent.Render(p.Text))
	}
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawGameOverScreen(centerX, centerY)
	}
}

// drawBlock writes lines centered as a block, so ASCII art stays aligned.
func (c *Client) drawBlock(centerX, row int, lines []string, style lipgloss.Style) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	for i, line := range lines {
		c.frame.Text(centerX-width/2, row+i, style.Render(line))
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleStartY := centerY - 10
	c.drawBlock(centerX, titleStartY, titleArt, c.styles.title)

	row := titleStartY + len(titleArt) + 1
	c.frame.TextCentered(centerX, row, c.styles.dim.Render("~ Hold the line over SSH ~"))

	row += 2
	c.frame.TextCentered(centerX, row, c.styles.accent.Render("Controls"))
	c.drawBlock(centerX, row+1, controlLines, c.styles.hud)

	row += len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		c.frame.TextCentered(centerX, row, c.styles.accent.Render(">>  Press SPACE to Start  <<"))
	}

	c.drawTopScores(centerX, row+2)
}

// drawPlayingHUD draws the in-game HUD in the corners of the playfield.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	f := c.frame
	f.Text(2, 1, c.styles.hud.Render(fmt.Sprintf("Score: %d", c.hud.score)))

	livesText := fmt.Sprintf("Lives: %d", c.hud.lives)
	style := c.styles.hud
	if c.hud.lives <= 1 {
		style = c.styles.danger
	}
	f.Text(termWidth-len(livesText)-1, 1, style.Render(livesText))

	playersText := fmt.Sprintf("Players: %d", c.server.Players())
	f.Text(termWidth-len(playersText)-1, termHeight, c.styles.dim.Render(playersText))

	if len(c.state.TopScores) > 0 {
		best := fmt.Sprintf("Best: %d", c.state.TopScores[0].Score)
		f.Text(2, termHeight, c.styles.dim.Render(best))
	}
}

// drawGameOverScreen draws the banner, final score and restart prompt over
// the frozen playfield.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	if !c.hud.gameOver {
		return
	}

	titleStartY := centerY - 9
	c.drawBlock(centerX, titleStartY, gameOverArt, c.styles.danger)

	row := titleStartY + len(gameOverArt) + 1
	c.frame.TextCentered(centerX, row, c.styles.hud.Render(fmt.Sprintf("Final score: %d", c.state.FinalScore)))
	if c.state.LastRank > 0 {
		c.frame.TextCentered(centerX, row+1, c.styles.accent.Render(fmt.Sprintf("New high score! #%d", c.state.LastRank)))
	}

	row += 3
	if time.Now().UnixMilli()/600%2 == 0 {
		c.frame.TextCentered(centerX, row, c.styles.accent.Render(">>  Press R to Restart  <<"))
	}

	c.drawTopScores(centerX, row+2)
}

// drawTopScores lists the scoreboard starting at row.
func (c *Client) drawTopScores(centerX, row int) {
	if len(c.state.TopScores) == 0 {
		return
	}
	c.frame.TextCentered(centerX, row, c.styles.accent.Render("High Scores"))

	lines := make([]string, len(c.state.TopScores))
	for i, e := range c.state.TopScores {
		lines[i] = formatScoreLine(i+1, e)
	}
	c.drawBlock(centerX, row+1, lines, c.styles.hud)
}

// formatScoreLine renders one fixed-width scoreboard row.
func formatScoreLine(rank int, e scoreboard.Entry) string {
	name := e.Username
	if len(name) > 12 {
		name = name[:12]
	}
	return fmt.Sprintf("%2d. %-12s %8d", rank, name, e.Score)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.frame.TextCentered(centerX, centerY-2, c.styles.danger.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.frame.TextCentered(centerX, centerY, c.styles.hud.Render(msg))
	c.frame.TextCentered(centerX, centerY+2, c.styles.dim.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.frame.TextCentered(centerX, centerY-3, c.styles.danger.Render("SERVER SHUTTING DOWN"))
	c.frame.TextCentered(centerX, centerY-1, c.styles.hud.Render("The server is restarting for maintenance."))
	c.frame.TextCentered(centerX, centerY, c.styles.hud.Render("Please reconnect in a moment."))

	remaining := int(c.state.shutdownTimer) + 1
	c.frame.TextCentered(centerX, centerY+2, c.styles.hud.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.frame.TextCentered(centerX, centerY+4, c.styles.dim.Render("Press Q to disconnect now"))
}
