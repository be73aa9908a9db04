// Package logutil configures the slog logger used by the command line
// tools. Logs go to stderr so stdout carries only program output.
package logutil

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel parses a level name such as "debug" or "WARN". The empty
// string means info.
func ParseLevel(s string) (slog.Level, error) {
	level := slog.LevelInfo
	s = strings.TrimSpace(s)
	if s == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// New returns a text logger writing to w at or above level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
