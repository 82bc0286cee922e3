package progress

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"squeeze/internal/ffmpeg"
	"squeeze/internal/services"
)

// useStub routes every command through script, whatever binary the
// invocation names.
func useStub(t *testing.T, script string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg-stub.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	previous := commandContext
	commandContext = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, path, args...)
	}
	t.Cleanup(func() { commandContext = previous })
}

func testInvocation() ffmpeg.Invocation {
	return ffmpeg.Invocation{
		Input:    "/in/clip.mp4",
		Output:   "/in/clip_2.0x.mp4",
		Duration: 10,
	}
}

func TestMonitorRendersProgress(t *testing.T) {
	useStub(t, `
printf 'frame=10\nfps=25.0\ntotal_size=1000\nout_time_us=2500000\nspeed=2x\nprogress=continue\n'
printf 'frame=20\nout_time_us=5000000\nprogress=continue\n'
echo "warning: something odd" >&2
printf 'out_time_us=10000000\nprogress=end\n'
`)
	var buf bytes.Buffer
	m := New(Options{Out: &buf, BarWidth: 20, Mode: ModeSampled})
	if err := m.Run(context.Background(), testInvocation()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	for _, want := range []string{Bar(20, 25), Bar(20, 50), Bar(20, 100)} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
	if strings.Contains(out, "warning") {
		t.Fatalf("sampled mode must not echo diagnostics: %q", out)
	}
}

func TestMonitorVerboseEchoesDiagnostics(t *testing.T) {
	useStub(t, `
printf 'frame=10\nfps=25.0\ntotal_size=1000\nout_time_us=2500000\nspeed=2x\nprogress=continue\n'
echo "warning: something odd" >&2
printf 'progress=end\n'
`)
	var buf bytes.Buffer
	m := New(Options{Out: &buf, BarWidth: 20, Verbose: true})
	if err := m.Run(context.Background(), testInvocation()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "time=00:00:02.50 speed=2x") || !strings.Contains(out, "warning: something odd") {
		t.Fatalf("unexpected verbose output %q", out)
	}
	if !strings.HasSuffix(out, Bar(20, 100)+"\n") {
		t.Fatalf("expected completion bar, got %q", out)
	}
}

func TestMonitorPassesArguments(t *testing.T) {
	dir := t.TempDir()
	record := filepath.Join(dir, "args.txt")
	useStub(t, `printf '%s\n' "$@" > "`+record+`"
printf 'progress=end\n'
`)
	var buf bytes.Buffer
	m := New(Options{Out: &buf, Mode: ModeSampled})
	inv := testInvocation()
	inv.Options = []ffmpeg.Arg{{Flag: "-c:v", Value: "libx264"}}
	if err := m.Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	got := strings.Fields(string(data))
	want := inv.Args()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected argv\n got: %v\nwant: %v", got, want)
	}
}

func TestMonitorReportsFailureDiagnostics(t *testing.T) {
	useStub(t, `
echo "Unknown encoder 'libnothing'" >&2
echo "Error selecting an encoder" >&2
exit 1
`)
	var buf bytes.Buffer
	m := New(Options{Out: &buf, Mode: ModeBar})
	err := m.Run(context.Background(), testInvocation())
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected encode failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unknown encoder 'libnothing'\nError selecting an encoder") {
		t.Fatalf("diagnostics must be carried verbatim, got %q", err.Error())
	}
	if services.ExitCode(err) != services.ExitFailure {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
}

func TestMonitorFailsOnOversizedOutputLine(t *testing.T) {
	useStub(t, `
head -c 2000000 /dev/zero | tr '\0' 'x' >&2
echo >&2
head -c 300000 /dev/zero | tr '\0' 'y' >&2
printf 'progress=end\n'
`)
	var buf bytes.Buffer
	m := New(Options{Out: &buf, Mode: ModeSampled})
	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background(), testInvocation()) }()

	select {
	case err := <-done:
		if !errors.Is(err, services.ErrEncode) {
			t.Fatalf("expected encode failure, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("monitor hung on an oversized output line")
	}
}

func TestMonitorCancellation(t *testing.T) {
	useStub(t, `
printf 'out_time_us=1000000\nprogress=continue\n'
exec sleep 30
`)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(200*time.Millisecond, cancel)

	var buf bytes.Buffer
	m := New(Options{Out: &buf, Mode: ModeBar, BarWidth: 10})
	start := time.Now()
	err := m.Run(ctx, testInvocation())
	if !errors.Is(err, services.ErrInterrupted) {
		t.Fatalf("expected interrupted, got %v", err)
	}
	if services.ExitCode(err) != services.ExitInterrupted {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("cancellation took %s", elapsed)
	}
	if strings.Contains(buf.String(), "100%") {
		t.Fatalf("cancelled run must not draw completion: %q", buf.String())
	}
}
