package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar(t *testing.T) {
	if got := Bar(10, 50); got != "█████░░░░░  50%" {
		t.Fatalf("unexpected half bar %q", got)
	}
	if got := Bar(4, 150); got != "████ 100%" {
		t.Fatalf("unexpected clamped bar %q", got)
	}
	if got := Bar(4, -3); got != "░░░░   0%" {
		t.Fatalf("unexpected empty bar %q", got)
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct{ requested, columns, want int }{
		{60, 200, 60},
		{60, 40, 34},
		{60, 12, minBarWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.requested, tt.columns); got != tt.want {
			t.Fatalf("clampWidth(%d, %d) = %d, want %d", tt.requested, tt.columns, got, tt.want)
		}
	}
}

func TestResolveModeForBuffers(t *testing.T) {
	var buf bytes.Buffer
	if got := resolveMode(ModeAuto, &buf, false); got != ModeSampled {
		t.Fatalf("expected sampled mode for a buffer, got %v", got)
	}
	if got := resolveMode(ModeAuto, &buf, true); got != ModeLines {
		t.Fatalf("expected line mode when verbose, got %v", got)
	}
	if got := resolveMode(ModeBar, &buf, true); got != ModeBar {
		t.Fatalf("explicit mode must win, got %v", got)
	}
}

func TestBarRendererRedrawsInPlace(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(ModeBar, &buf, 4)
	r.update(Snapshot{}, 25)
	r.update(Snapshot{}, 50)
	r.finish(true)
	want := "\r█░░░  25%\r██░░  50%\r████ 100%\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSampledRendererEmitsPerBucket(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(ModeSampled, &buf, 4)
	for _, pct := range []float64{1, 2, 3, 6, 7, 100} {
		r.update(Snapshot{}, pct)
	}
	r.finish(true)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three sampled lines, got %q", buf.String())
	}
	if lines[2] != "████ 100%" {
		t.Fatalf("unexpected final line %q", lines[2])
	}
}

func TestLineRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(ModeLines, &buf, 4)
	r.update(Snapshot{Frame: 10, FPS: 25, TotalSize: 1000, OutTime: 2.5, Speed: "2x"}, 25)
	r.diagnostic("warning: low disk")
	want := "frame=10 fps=25.0 size=1.0 kB time=00:00:02.50 speed=2x  25%\nwarning: low disk\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
