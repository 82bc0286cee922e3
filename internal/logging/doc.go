// Package logging assembles structured slog loggers and formatting helpers used
// across squeeze.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers that tag log lines with the run
// identifier, input file, and action. The package also provides a no-op
// logger for tests and a sampler that thins out progress lines when output is
// not a terminal.
package logging
