package progress

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"squeeze/internal/ffmpeg"
	"squeeze/internal/logging"
	"squeeze/internal/services"
)

var commandContext = exec.CommandContext

// channel capacity between the readers and the writer
const messageBuffer = 64

type messageKind int

const (
	messageToken messageKind = iota
	messageDiagnostic
	messageStop
)

type message struct {
	kind messageKind
	text string
}

// Options configures a Monitor.
type Options struct {
	// Out receives the progress display. Defaults to stdout.
	Out      io.Writer
	BarWidth int
	Verbose  bool
	Mode     Mode
	Logger   *slog.Logger
}

// Monitor runs ffmpeg invocations and renders their progress.
type Monitor struct {
	out     io.Writer
	width   int
	mode    Mode
	verbose bool
	logger  *slog.Logger
}

// New constructs a Monitor.
func New(opts Options) *Monitor {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Monitor{
		out:     out,
		width:   fitWidth(out, opts.BarWidth),
		mode:    resolveMode(opts.Mode, out, opts.Verbose),
		verbose: opts.Verbose,
		logger:  logging.NewComponentLogger(opts.Logger, "progress"),
	}
}

// Run executes inv and blocks until the process exits and every goroutine
// has been joined.
func (m *Monitor) Run(ctx context.Context, inv ffmpeg.Invocation) error {
	cmd := commandContext(ctx, inv.BinaryName(), inv.Args()...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrEncode, "encode", "stdout pipe", "", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return services.Wrap(services.ErrEncode, "encode", "stderr pipe", "", err)
	}
	m.logger.Debug("starting ffmpeg",
		logging.String("command", inv.ShellString()),
		logging.Float64("expected_seconds", inv.Duration),
	)
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrEncode, "encode", "start", inv.BinaryName(), err)
	}

	messages := make(chan message, messageBuffer)
	var readers sync.WaitGroup
	var scanErr error
	var once sync.Once

	read := func(r io.Reader, kind messageKind) {
		defer readers.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			messages <- message{kind: kind, text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
				if ctx.Err() == nil {
					_ = cmd.Process.Kill()
				}
			})
			// ffmpeg blocks on a full pipe until it exits; keep draining.
			_, _ = io.Copy(io.Discard, r)
		}
	}

	w := &writer{
		renderer: newRenderer(m.mode, m.out, m.width),
		total:    inv.Duration,
		logger:   m.logger,
	}
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		w.consume(messages)
	}()

	readers.Add(2)
	go read(stdout, messageToken)
	go read(stderr, messageDiagnostic)

	readers.Wait()
	waitErr := cmd.Wait()

	messages <- message{kind: messageStop}
	<-writerDone

	if ctx.Err() != nil {
		w.renderer.finish(false)
		return services.Wrap(services.ErrInterrupted, "encode", "ffmpeg", "cancelled", ctx.Err())
	}
	if scanErr != nil {
		w.renderer.finish(false)
		return services.Wrap(services.ErrEncode, "encode", "scan output", "", scanErr)
	}
	if waitErr != nil {
		w.renderer.finish(false)
		detail := w.diagnostics()
		if detail == "" {
			detail = waitErr.Error()
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return services.Wrap(services.ErrEncode, "encode", fmt.Sprintf("ffmpeg exited with status %d", exitErr.ExitCode()), detail, nil)
		}
		return services.Wrap(services.ErrEncode, "encode", "ffmpeg", detail, waitErr)
	}
	w.renderer.finish(true)
	return nil
}

// writer is owned by the consuming goroutine until the stop message.
type writer struct {
	renderer renderer
	parser   Parser
	total    float64
	logger   *slog.Logger
	diag     strings.Builder
}

func (w *writer) consume(messages <-chan message) {
	for msg := range messages {
		switch msg.kind {
		case messageStop:
			return
		case messageDiagnostic:
			w.diag.WriteString(msg.text)
			w.diag.WriteByte('\n')
			w.logger.Debug("ffmpeg", logging.String("line", msg.text))
			w.renderer.diagnostic(msg.text)
		case messageToken:
			tok, ok := ParseLine(msg.text)
			if !ok {
				continue
			}
			if snap, done := w.parser.Feed(tok); done && !snap.Done {
				w.renderer.update(snap, Percent(snap.OutTime, w.total))
			}
		}
	}
}

func (w *writer) diagnostics() string {
	return strings.TrimRight(w.diag.String(), "\n")
}
