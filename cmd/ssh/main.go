package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/spacedefender/internal/config"
	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/loop/client"
	gameconfig "github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/scoreboard"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scoreboardPath := config.GetEnv("SCOREBOARD_PATH", "")
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scoreboard", scoreboardPath)

	settings, err := gameconfig.LoadSettings(config.GetEnv("GAME_SETTINGS", ""))
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	board := scoreboard.New(gameconfig.TopScoreCount)
	if scoreboardPath != "" {
		if board, err = scoreboard.Open(scoreboardPath, gameconfig.TopScoreCount); err != nil {
			logger.Fatal("failed to open scoreboard", "err", err)
		}
	}

	// Shared lobby - every SSH session registers here
	lobby := server.NewServer(board, logger.WithPrefix("lobby"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(lobby, &settings, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players", "players", lobby.Players())
	logSessions(logger, lobby.Sessions())
	if lobby.Shutdown(gameconfig.ShutdownWaitTimeout) {
		logger.Info("all players disconnected")
	} else {
		logger.Warn("players still connected", "players", lobby.Players())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// logSessions writes one line per connected session.
func logSessions(logger *log.Logger, sessions []server.SessionStats) {
	for _, st := range sessions {
		logger.Info("session",
			"user", st.Username,
			"games", st.Games,
			"best", st.BestScore,
			"connected", time.Since(st.Joined).Round(time.Second),
		)
	}
}

// gameMiddleware runs a game client for each SSH session.
func gameMiddleware(lobby *server.Server, settings *gameconfig.Settings, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new game session",
				"user", sess.User(),
				"terminal", pty.Term,
				"width", pty.Window.Width,
				"height", pty.Window.Height,
			)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c, err := client.NewClient(lobby, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Settings:     settings,
				Logger:       logger.WithPrefix("client"),
			})
			if err != nil {
				fmt.Fprintln(sess, "Error:", err)
				logger.Warn("session rejected", "user", sess.User(), "err", err)
				return
			}
			if err := c.Run(); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
