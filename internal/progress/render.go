package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"squeeze/internal/logging"
)

// Mode selects how progress is drawn.
type Mode int

const (
	// ModeAuto picks ModeLines when verbose, ModeBar on a terminal, and
	// ModeSampled otherwise.
	ModeAuto Mode = iota
	// ModeBar redraws one bar in place with carriage returns.
	ModeBar
	// ModeLines prints one detailed line per update.
	ModeLines
	// ModeSampled prints a bar on its own line every 5%.
	ModeSampled
)

const (
	DefaultBarWidth = 60
	minBarWidth     = 10
	// room for " 100%"
	percentWidth = 5

	filledCell = "█"
	emptyCell  = "░"
)

// Bar renders width cells for percent followed by a right-aligned percentage.
func Bar(width int, percent float64) string {
	if width < 1 {
		width = DefaultBarWidth
	}
	percent = math.Min(math.Max(percent, 0), 100)
	filled := int(percent / 100 * float64(width))
	return strings.Repeat(filledCell, filled) + strings.Repeat(emptyCell, width-filled) + fmt.Sprintf(" %3d%%", int(percent))
}

func resolveMode(mode Mode, out io.Writer, verbose bool) Mode {
	if mode != ModeAuto {
		return mode
	}
	if verbose {
		return ModeLines
	}
	if isTerminal(out) {
		return ModeBar
	}
	return ModeSampled
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// fitWidth shrinks the bar so bar and percentage fit in the terminal.
func fitWidth(out io.Writer, requested int) int {
	if requested < 1 {
		requested = DefaultBarWidth
	}
	f, ok := out.(*os.File)
	if !ok {
		return requested
	}
	columns, _, err := term.GetSize(int(f.Fd()))
	if err != nil || columns <= 0 {
		return requested
	}
	return clampWidth(requested, columns)
}

func clampWidth(requested, columns int) int {
	if available := columns - percentWidth - 1; requested > available {
		return max(available, minBarWidth)
	}
	return requested
}

type renderer interface {
	update(snap Snapshot, percent float64)
	diagnostic(line string)
	finish(completed bool)
}

func newRenderer(mode Mode, out io.Writer, width int) renderer {
	switch mode {
	case ModeBar:
		return &barRenderer{out: out, width: width}
	case ModeLines:
		return &lineRenderer{out: out, width: width}
	default:
		return &sampledRenderer{out: out, width: width, sampler: logging.NewProgressSampler(5)}
	}
}

type barRenderer struct {
	out   io.Writer
	width int
	drawn bool
}

func (r *barRenderer) update(_ Snapshot, percent float64) {
	fmt.Fprint(r.out, "\r"+Bar(r.width, percent))
	r.drawn = true
}

func (r *barRenderer) diagnostic(string) {}

func (r *barRenderer) finish(completed bool) {
	if completed {
		r.update(Snapshot{}, 100)
	}
	if r.drawn {
		fmt.Fprintln(r.out)
	}
}

type lineRenderer struct {
	out   io.Writer
	width int
}

func (r *lineRenderer) update(snap Snapshot, percent float64) {
	speed := snap.Speed
	if speed == "" {
		speed = "N/A"
	}
	fmt.Fprintf(r.out, "frame=%d fps=%.1f size=%s time=%s speed=%s %3d%%\n",
		snap.Frame,
		snap.FPS,
		humanize.Bytes(uint64(snap.TotalSize)),
		formatClock(snap.OutTime),
		speed,
		int(percent),
	)
}

func (r *lineRenderer) diagnostic(line string) {
	fmt.Fprintln(r.out, line)
}

func (r *lineRenderer) finish(completed bool) {
	if completed {
		fmt.Fprintln(r.out, Bar(r.width, 100))
	}
}

type sampledRenderer struct {
	out     io.Writer
	width   int
	sampler *logging.ProgressSampler
}

func (r *sampledRenderer) update(_ Snapshot, percent float64) {
	if r.sampler.ShouldEmit(percent) {
		fmt.Fprintln(r.out, Bar(r.width, percent))
	}
}

func (r *sampledRenderer) diagnostic(string) {}

func (r *sampledRenderer) finish(completed bool) {
	if completed {
		r.update(Snapshot{}, 100)
	}
}

// formatClock renders seconds as HH:MM:SS.cc.
func formatClock(seconds float64) string {
	d := time.Duration(math.Max(seconds, 0) * float64(time.Second)).Round(10 * time.Millisecond)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := d.Seconds() - float64(int(d/time.Minute))*60
	return fmt.Sprintf("%02d:%02d:%05.2f", h, m, s)
}
