package ffmpeg

import (
	"strconv"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Arg is one output option. An empty Value emits the flag alone.
type Arg struct {
	Flag  string
	Value string
}

// Invocation is a fully resolved ffmpeg command line.
type Invocation struct {
	Binary       string
	Input        string
	Output       string
	Options      []Arg
	VideoFilters string
	AudioFilters string
	Format       string
	LogLevel     string
	// Duration is the expected output length in seconds; the progress
	// monitor divides elapsed output time by it.
	Duration float64
}

// Args returns the argument vector without the binary. Global options come
// first, then the input, output options in insertion order, filters, the
// container, and finally the output path.
func (inv Invocation) Args() []string {
	level := strings.TrimSpace(inv.LogLevel)
	if level == "" {
		level = "warning"
	}
	args := []string{
		"-hide_banner",
		"-nostats",
		"-loglevel", level,
		"-progress", "pipe:1",
		"-y",
		"-i", inv.Input,
	}
	for _, opt := range inv.Options {
		args = append(args, opt.Flag)
		if opt.Value != "" {
			args = append(args, opt.Value)
		}
	}
	if inv.VideoFilters != "" {
		args = append(args, "-vf", inv.VideoFilters)
	}
	if inv.AudioFilters != "" {
		args = append(args, "-af", inv.AudioFilters)
	}
	if inv.Format != "" {
		args = append(args, "-f", inv.Format)
	}
	return append(args, inv.Output)
}

// BinaryName returns the configured binary, defaulting to ffmpeg.
func (inv Invocation) BinaryName() string {
	if b := strings.TrimSpace(inv.Binary); b != "" {
		return b
	}
	return "ffmpeg"
}

// ShellString renders the invocation as a line a POSIX shell reproduces
// exactly.
func (inv Invocation) ShellString() string {
	return shellescape.QuoteCommand(append([]string{inv.BinaryName()}, inv.Args()...))
}

// Value returns the value of the first option with flag.
func (inv Invocation) Value(flag string) (string, bool) {
	for _, opt := range inv.Options {
		if opt.Flag == flag {
			return opt.Value, true
		}
	}
	return "", false
}

// Int formats an integer option value.
func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}
