// Package util holds small process helpers shared by the binaries.
package util

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns a JSON logger on stdout at level, falling back to info.
func NewLogger(level string) zerolog.Logger {
	return newLogger(os.Stdout, level)
}

// NewConsoleLogger writes human readable lines to w, keeping stdout free for command output.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}, level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

// GetEnv returns the environment value for k, or def when unset or empty.
func GetEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
