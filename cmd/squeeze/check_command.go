package main

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"squeeze/internal/deps"
	"squeeze/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe, and the configured encoders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out, cfg.Display.Color)

			for _, line := range renderSectionHeader("Binaries", colorize) {
				fmt.Fprintln(out, line)
			}
			statuses := deps.CheckBinaries(cmd.Context(), deps.MediaRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
			missing := 0
			for _, status := range statuses {
				if !status.Available {
					missing++
					fmt.Fprintln(out, renderStatusLine(status.Name, statusError, status.Detail, colorize))
					continue
				}
				detail := status.Path
				if status.Version != "" {
					detail = status.Version
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, statusOK, detail, colorize))
			}

			ffmpegStatus, _ := lo.Find(statuses, func(s deps.Status) bool { return s.Name == "FFmpeg" })
			if ffmpegStatus.Available {
				encoders := []string{
					cfg.Encoding.VideoEncoder,
					cfg.Encoding.AV1Encoder,
					cfg.Encoding.AudioEncoder,
					cfg.Encoding.AudioOnlyEncoder,
				}
				results, err := deps.CheckEncoders(cmd.Context(), ffmpegStatus.Path, encoders)
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Encoders", colorize) {
					fmt.Fprintln(out, line)
				}
				if err != nil {
					fmt.Fprintln(out, renderStatusLine("encoders", statusWarn, err.Error(), colorize))
				}
				for _, r := range results {
					if r.Available {
						fmt.Fprintln(out, renderStatusLine(r.Name, statusOK, "", colorize))
					} else {
						missing++
						fmt.Fprintln(out, renderStatusLine(r.Name, statusError, "not built into ffmpeg", colorize))
					}
				}
			}

			if missing > 0 {
				return services.Wrap(services.ErrConfiguration, "check", "", fmt.Sprintf("%d requirement(s) unavailable", missing), errors.New("toolchain incomplete"))
			}
			return nil
		},
	}
}
