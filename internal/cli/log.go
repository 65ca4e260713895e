// Package cli implements the siderail command-line interface.
//
// Commands lay out page documents, render the resulting plans, watch a
// document for edits, browse regions interactively and serve the HTTP API.
// The CLI is built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - plan: lay out a document and write the plan as JSON
//   - render: write svg, dot, tree, png or pdf diagrams of a plan
//   - watch: re-run relayout whenever the document file changes
//   - inspect: browse rails and regions in a terminal UI
//   - serve: run the HTTP API
//   - cache: manage the plan cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, and the
// config file can set log_level. Loggers are passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with "15:04:05.00"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs an operation's completion with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing an operation.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Laid out 2 rails (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
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
