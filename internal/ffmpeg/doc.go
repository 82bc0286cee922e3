// Package ffmpeg models a single ffmpeg command line: an ordered set of
// output options and filter graphs with a deterministic argument vector and a
// shell-quoted rendering for print-only runs.
package ffmpeg
