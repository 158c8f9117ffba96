// SPDX-License-Identifier: MIT
// Package telemetry provides lvpra's diagnostic logging, modeled on
// kegliz-qplay's internal/logger: a thin wrapper over zerolog with
// renamed field names and a child-logger pattern for attaching run and
// component context.
//
// This is trace/diagnostic logging only (unique-table growth events,
// compute-table size, per-stage diagram sizes and timings, emitted from
// analysis.Analyze's own stage boundaries via analysis.WithLogger) —
// never the user-facing analysis report, which remains an external
// collaborator's concern per §1/§6 of the design notes. Analyses
// default to a no-op logger, so lvpra stays silent unless a caller
// opts in.
package telemetry

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with lvpra's field conventions.
type Logger struct {
	zerolog.Logger
}

// Options configures a new Logger.
type Options struct {
	// Debug enables debug-level output; default is info-level.
	Debug bool
	// Output overrides the destination writer; default os.Stdout.
	Output io.Writer
}

func init() {
	zerolog.TimestampFieldName = "T"
	zerolog.LevelFieldName = "L"
	zerolog.MessageFieldName = "M"
}

// New builds a Logger per Options.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{l}
}

// Nop returns a Logger that discards everything, used as the default
// when analysis.Analyze is called without an explicit WithLogger option.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// ForRun attaches a run-correlation id. An empty runID generates a fresh
// one via google/uuid, matching kegliz-qplay's pstore.go id-minting
// pattern.
func (l *Logger) ForRun(runID string) *Logger {
	if runID == "" {
		runID = uuid.New().String()
	}
	return &Logger{l.With().Str("run", runID).Logger()}
}

// ForComponent attaches a component field ("pdag", "bdd", "zbdd", ...).
func (l *Logger) ForComponent(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}
