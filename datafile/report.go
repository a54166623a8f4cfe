package datafile

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Reporter receives diagnostic events from write operations: failed saves,
// non-fatal warnings, and similar. args are alternating key/value pairs.
// Injecting a Reporter lets tests capture output without global state.
type Reporter interface {
	Report(event string, args ...any)
}

// NewConsoleReporter returns a Reporter that logs events through slog with a
// tinted console handler writing to w.
func NewConsoleReporter(w io.Writer) Reporter {
	return &consoleReporter{
		logger: slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.TimeOnly,
		})),
	}
}

type consoleReporter struct {
	logger *slog.Logger
}

func (r *consoleReporter) Report(event string, args ...any) {
	r.logger.Warn(event, args...)
}
