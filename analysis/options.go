// SPDX-License-Identifier: MIT
package analysis

import "github.com/katalvlaran/lvpra/internal/telemetry"

// options bundles Analyze's own configuration, separate from
// model.Settings since a logger is a diagnostic concern of this
// orchestration layer, not an analysis-semantics input.
type options struct {
	logger *telemetry.Logger
}

// Option mutates an Analyze call's own configuration, matching
// model.Settings' functional-options idiom.
type Option func(*options)

// WithLogger attaches a telemetry.Logger that Analyze uses to trace
// unique-table growth and per-stage diagram sizes/timings. Analyze
// defaults to telemetry.Nop(), so lvpra stays silent unless a caller
// opts in, per internal/telemetry's own package doc.
func WithLogger(l *telemetry.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts ...Option) *options {
	o := &options{logger: telemetry.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
