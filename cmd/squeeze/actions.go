package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"squeeze/internal/encoding"
	"squeeze/internal/logging"
	"squeeze/internal/progress"
	"squeeze/internal/runlock"
	"squeeze/internal/services"
	"squeeze/internal/workflow"
)

func runActions(cmd *cobra.Command, ctx *commandContext, opts rootOptions, files []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr(), opts.verbose, opts.debug)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}

	profile, err := encoding.ProfileFromConfig(cfg, encoding.ProfileOptions{
		Tutorial:     opts.tutorial,
		AV1:          opts.av1,
		VideoEncoder: opts.videoEncoder,
		RateControl:  opts.rateControl,
	})
	if err != nil {
		return err
	}
	plan := workflow.Plan{
		Trim:        opts.trim,
		Speed:       opts.speed,
		ExportAudio: opts.audio,
		Normalize:   opts.normalize || opts.tutorial,
		PrintOnly:   opts.command,
	}

	runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
	logging.WithContext(runCtx, logger).Debug("run starting",
		logging.String("config", ctx.configPath),
		logging.Any("actions", plan.Actions()),
		logging.String("video_codec", profile.VideoCodec),
		logging.String("rate_control", string(profile.RateControl)),
		logging.Int("files", len(files)),
	)

	runnerOpts := workflow.Options{
		Profile:  profile,
		FFmpeg:   cfg.FFmpegBinary(),
		FFprobe:  cfg.FFprobeBinary(),
		LogLevel: ffmpegLogLevel(opts),
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
	}
	if !opts.command {
		runnerOpts.Executor = progress.New(progress.Options{
			Out:      cmd.OutOrStdout(),
			BarWidth: cfg.Display.BarWidth,
			Verbose:  opts.verbose,
			Logger:   logger,
		})
		if cfg.Runtime.Serialize {
			lock, err := runlock.New(cfg.Runtime.LockPath)
			if err != nil {
				return err
			}
			runnerOpts.Lock = lock
		}
	}

	summary, err := workflow.New(runnerOpts).Run(runCtx, files, plan)
	if opts.command || len(summary.Written()) == 0 {
		return err
	}
	colorize := shouldColorize(cmd.OutOrStdout(), cfg.Display.Color)
	out := cmd.OutOrStdout()
	for _, written := range summary.Written() {
		fmt.Fprintln(out, renderStatusLine(string(written.Action), statusOK, written.Path, colorize))
	}
	if err == nil {
		fmt.Fprintln(out, renderStatusLine("done", statusInfo, summary.String(), colorize))
	}
	return err
}

func ffmpegLogLevel(opts rootOptions) string {
	switch {
	case opts.debug:
		return "debug"
	case opts.verbose:
		return "verbose"
	default:
		return "warning"
	}
}
