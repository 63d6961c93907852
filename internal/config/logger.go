package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w. The level comes from
// LOG_LEVEL and defaults to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// NewFileLogger logs to the file named by LOG_FILE, or discards everything if
// it is unset. Used when stdout and stderr belong to the game screen.
// The returned close function is never nil.
func NewFileLogger(prefix string) (*log.Logger, func() error, error) {
	path := GetEnv("LOG_FILE", "")
	if path == "" {
		return NewLogger(io.Discard, prefix), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, prefix), f.Close, nil
}
