package testutil

import (
	"io"
	"log/slog"

	"github.com/dtroode/shopfront/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard, int(slog.LevelError)+1)
}
