package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/spacedefender/internal/config"
	"github.com/tomz197/spacedefender/internal/loop/client"
	gameconfig "github.com/tomz197/spacedefender/internal/loop/config"
	"github.com/tomz197/spacedefender/internal/loop/server"
	"github.com/tomz197/spacedefender/internal/scoreboard"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game, so logs go to LOG_FILE if set.
	logger, closeLog, err := config.NewFileLogger("game")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	settings, err := gameconfig.LoadSettings(config.GetEnv("GAME_SETTINGS", ""))
	if err != nil {
		return err
	}

	board := scoreboard.New(gameconfig.TopScoreCount)
	if path := config.GetEnv("SCOREBOARD_PATH", ""); path != "" {
		if board, err = scoreboard.Open(path, gameconfig.TopScoreCount); err != nil {
			return err
		}
	}
	lobby := server.NewServer(board, logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c, err := client.NewClient(lobby, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Settings: &settings,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return c.Run()
}
