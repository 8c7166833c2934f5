// Package cli implements the clusterview command-line interface.
//
// The commands read a transcript-set JSON file, run the layout pipeline
// for one gene and present the result. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
//   - layout: compute and write the layout JSON (optionally FASTA per cluster)
//   - cluster: print the per-k group table, optionally as CSV
//   - order: print transcripts in display order
//   - cache: clear or locate the layout cache
//
// # Configuration
//
// Options resolve in layers: pipeline defaults, then the TOML config file
// ($XDG_CONFIG_HOME/clusterview/config.toml or --config), then flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// shows the per-stage timings of the pipeline. The logger travels through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with timestamps as
// "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of a step with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded 12 transcripts of GAPDH (4ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
