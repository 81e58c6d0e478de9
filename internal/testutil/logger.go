// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"log/slog"

	"github.com/dtroode/chirper-server/internal/logger"
)

// DiscardLogger returns a debug-level logger that drops every record, so the
// log calls of the code under test still run.
func DiscardLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, int(slog.LevelDebug))
}
