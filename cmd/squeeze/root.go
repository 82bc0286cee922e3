package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"squeeze/internal/services"
)

const rootLong = `Convert media files to MP4, keeping quality at or below a baseline:
  * Default:  720p, 2 Mbps, 25 fps for projected video
  * Tutorial: 720p, 500 kbps, 10 fps for screen recordings

Also trims, changes playback speed, and exports audio. With several
actions the steps run in the order trim, speed, audio, normalize, each
consuming the previous step's output.`

type rootOptions struct {
	audio        bool
	command      bool
	info         bool
	trim         []string
	rateControl  string
	normalize    bool
	speed        float64
	tutorial     bool
	verbose      bool
	debug        bool
	av1          bool
	videoEncoder string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts rootOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "squeeze [flags] FILE...",
		Short:         "Normalize, trim, speed up, or export audio from media files",
		Long:          rootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("speed") && !(opts.speed > 0) {
				return services.Wrap(services.ErrValidation, "flags", "speed", fmt.Sprintf("speed factor must be positive, got %v", opts.speed), nil)
			}
			trim, files, err := resolveTrim(opts.trim, args)
			if err != nil {
				return err
			}
			opts.trim = trim
			if len(files) == 0 {
				return cmd.Help()
			}
			if opts.info {
				return runInfo(cmd, ctx, files)
			}
			return runActions(cmd, ctx, opts, files)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.audio, "audio", "a", false, "Export normalized MP3 audio")
	flags.BoolVarP(&opts.command, "command", "c", false, "Print the equivalent ffmpeg command instead of running it")
	flags.BoolVarP(&opts.info, "info", "i", false, "Show stream properties of the given files")
	flags.StringSliceVarP(&opts.trim, "trim", "k", nil, "Keep content between START and END ([[HH:]MM:]SS)")
	flags.StringVarP(&opts.rateControl, "rate-control-mode", "m", "", "Rate control mode: CRF or CBR (default from config)")
	flags.BoolVarP(&opts.normalize, "normalize", "n", false, "Normalize resolution, bitrate, and frame rate (default action)")
	flags.Float64VarP(&opts.speed, "speed", "s", 0, "Change playback speed by FACTOR")
	flags.BoolVarP(&opts.tutorial, "tutorial", "t", false, "Use the lower bitrate, lower frame rate tutorial profile")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed progress and ffmpeg diagnostics")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Log debug details and run ffmpeg at debug log level")
	flags.BoolVar(&opts.av1, "av1", false, "Shortcut for the AV1 video encoder")
	flags.StringVar(&opts.videoEncoder, "video_encoder", "", "Video encoder, e.g. libx264, libsvtav1, libvpx-vp9")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}

// resolveTrim accepts both "-k START,END" and "-k START END". In the second
// form pflag leaves END at the front of the positional arguments.
func resolveTrim(trim, args []string) ([]string, []string, error) {
	switch len(trim) {
	case 0, 2:
		return trim, args, nil
	case 1:
		if len(args) == 0 {
			return nil, nil, services.Wrap(services.ErrValidation, "flags", "trim", "missing END timestamp", nil)
		}
		return []string{trim[0], args[0]}, args[1:], nil
	default:
		return nil, nil, services.Wrap(services.ErrValidation, "flags", "trim", fmt.Sprintf("expected START and END, got %q", strings.Join(trim, ",")), nil)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
