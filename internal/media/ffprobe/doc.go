// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no squeeze-specific dependencies.
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns the parsed Result
//   - Parse: decodes a captured ffprobe JSON document
//
// Helper methods on Result select the first audio and motion-video streams,
// split container format tags, and expose raw stream properties for display.
package ffprobe
