package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"squeeze/internal/config"
	"squeeze/internal/encoding"
	"squeeze/internal/logging"
	"squeeze/internal/media"
	"squeeze/internal/services"
)

// ProbeFunc reads a media file into a descriptor.
type ProbeFunc func(ctx context.Context, binary, path string) (media.Descriptor, error)

// Locker serializes runs across processes.
type Locker interface {
	Acquire(ctx context.Context) error
	Release() error
}

// Options configures a Runner.
type Options struct {
	Profile  encoding.Profile
	FFmpeg   string
	FFprobe  string
	LogLevel string
	Executor encoding.Executor
	Probe    ProbeFunc
	Fs       afero.Fs
	// Out receives printed commands. Defaults to stdout.
	Out    io.Writer
	Logger *slog.Logger
	Lock   Locker
}

// Runner processes input files sequentially.
type Runner struct {
	profile  encoding.Profile
	settings encoding.Settings
	ffprobe  string
	exec     encoding.Executor
	probe    ProbeFunc
	fs       afero.Fs
	out      io.Writer
	logger   *slog.Logger
	lock     Locker
}

// New constructs a Runner, filling unset options with the real prober, the
// OS filesystem, and stdout.
func New(opts Options) *Runner {
	r := &Runner{
		profile:  opts.Profile,
		settings: encoding.Settings{FFmpeg: opts.FFmpeg, LogLevel: opts.LogLevel},
		ffprobe:  opts.FFprobe,
		exec:     opts.Executor,
		probe:    opts.Probe,
		fs:       opts.Fs,
		out:      opts.Out,
		logger:   logging.NewComponentLogger(opts.Logger, "workflow"),
		lock:     opts.Lock,
	}
	if r.probe == nil {
		r.probe = media.Probe
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	return r
}

// Run processes files in order and returns what was produced. The returned
// Summary is valid even when err is non-nil.
func (r *Runner) Run(ctx context.Context, files []string, plan Plan) (Summary, error) {
	var summary Summary
	if err := plan.Validate(); err != nil {
		return summary, err
	}
	if r.exec == nil && !plan.PrintOnly {
		return summary, services.Wrap(services.ErrConfiguration, "workflow", "executor", "no encoder configured", nil)
	}
	if r.lock != nil && !plan.PrintOnly {
		r.logger.Debug("waiting for run lock")
		if err := r.lock.Acquire(ctx); err != nil {
			return summary, err
		}
		defer func() {
			if err := r.lock.Release(); err != nil {
				r.logger.Warn("failed to release run lock", logging.Error(err))
			}
		}()
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, services.Wrap(services.ErrInterrupted, "workflow", "batch", "", err)
		}
		fileCtx := services.WithFile(ctx, file)
		outputs, err := r.processFile(fileCtx, file, plan)
		summary.Outputs = append(summary.Outputs, outputs...)
		if err != nil {
			if services.Skippable(err) {
				summary.Skipped = append(summary.Skipped, file)
				logging.WarnWithHint(
					logging.WithContext(fileCtx, r.logger),
					fmt.Sprintf("Skipped invalid input file: %s", file),
					"input_skipped",
					"check that the path is a readable audio or video file",
					logging.Error(err),
				)
				continue
			}
			return summary, err
		}
		summary.Processed++
	}
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, file string, plan Plan) ([]Output, error) {
	path, err := r.resolve(file)
	if err != nil {
		return nil, err
	}
	original, err := r.probe(ctx, r.ffprobe, path)
	if err != nil {
		return nil, err
	}
	logging.WithContext(ctx, r.logger).Debug("input probed",
		logging.String("path", original.Path),
		logging.Float64("duration_seconds", original.Duration),
		logging.Int("height", original.Video.Height),
		logging.Float64("fps", original.FPS()),
	)

	steps := plan.steps()
	outputs := make([]Output, 0, len(steps))
	current := original
	for i, s := range steps {
		stepCtx := services.WithAction(ctx, string(s.action))
		logger := logging.WithContext(stepCtx, r.logger)

		task := encoding.NewTask(current, r.profile, r.settings)
		if err := s.configure(task); err != nil {
			return outputs, err
		}
		if err := task.Build(); err != nil {
			return outputs, err
		}
		logger.Debug("task built",
			logging.String("output", task.Output().Path),
			logging.String("command", task.Invocation().ShellString()),
			logging.Any("changes", current.Diff(task.Output())),
		)
		result, err := task.Run(stepCtx, r.exec, plan.PrintOnly)
		if err != nil {
			return outputs, err
		}

		out := Output{
			Input:   current.Path,
			Path:    result.Output.Path,
			Action:  s.action,
			Command: result.Command,
			Printed: result.Printed,
		}
		if result.Printed {
			fmt.Fprintln(r.out, result.Command)
			outputs = append(outputs, out)
			continue
		}
		if info, statErr := r.fs.Stat(out.Path); statErr == nil {
			out.Size = info.Size()
		}
		outputs = append(outputs, out)
		logger.Info("output written", logging.String("output", out.Path), logging.Int64("bytes", out.Size))

		if i < len(steps)-1 {
			next, err := r.probe(ctx, r.ffprobe, out.Path)
			if err != nil {
				return outputs, err
			}
			current = next
		}
	}
	return outputs, nil
}

// resolve expands the path and checks it names a regular file.
func (r *Runner) resolve(file string) (string, error) {
	if strings.TrimSpace(file) == "" {
		return "", services.Wrap(services.ErrInvalidInput, "validate", "", "empty path", nil)
	}
	abs, err := config.ExpandPath(file)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "validate", file, "expand path", err)
	}
	info, err := r.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrInvalidInput, "validate", file, "no such file", nil)
		}
		return "", services.Wrap(services.ErrInvalidInput, "validate", file, "", err)
	}
	if !info.Mode().IsRegular() {
		return "", services.Wrap(services.ErrInvalidInput, "validate", file, "not a regular file", nil)
	}
	return abs, nil
}
