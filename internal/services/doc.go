// Package services defines shared utilities consumed by the media pipeline
// and the command line.
//
// Key responsibilities:
//   - Context helpers that stamp the run identifier, input file, and action
//     name for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     skippable (invalid input), fatal (probe, encode, configuration), or
//     interrupts, and map them to process exit codes.
package services
