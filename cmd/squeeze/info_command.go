package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/message"

	"squeeze/internal/config"
	"squeeze/internal/language"
	"squeeze/internal/logging"
	"squeeze/internal/media/ffprobe"
	"squeeze/internal/services"
)

var inspect = ffprobe.Inspect

// runInfo prints a property table per stream of every file. Unreadable
// files are skipped like any other invalid input.
func runInfo(cmd *cobra.Command, ctx *commandContext, files []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr(), false, false)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}
	printer := message.NewPrinter(xlanguage.English)
	out := cmd.OutOrStdout()

	for _, file := range files {
		if err := cmd.Context().Err(); err != nil {
			return services.Wrap(services.ErrInterrupted, "info", "batch", "", err)
		}
		path, statErr := config.ExpandPath(file)
		if statErr == nil {
			statErr = requireRegularFile(path)
		}
		if statErr != nil {
			logger.Warn(fmt.Sprintf("Skipped invalid input file: %s", file), logging.Error(statErr))
			continue
		}
		result, err := inspect(cmd.Context(), cfg.FFprobeBinary(), path)
		if err != nil {
			if cmd.Context().Err() != nil {
				return services.Wrap(services.ErrInterrupted, "info", path, "", err)
			}
			return services.Wrap(services.ErrProbe, "info", path, "", err)
		}
		if err := writeInfo(out, printer, path, result); err != nil {
			return services.Wrap(services.ErrProbe, "info", path, "", err)
		}
	}
	return nil
}

func writeInfo(out io.Writer, printer *message.Printer, path string, result ffprobe.Result) error {
	streams, err := result.StreamProperties()
	if err != nil {
		return err
	}
	summary := []string{path}
	if name := strings.TrimSpace(result.Format.FormatName); name != "" {
		summary = append(summary, name)
	}
	if seconds := result.DurationSeconds(); seconds > 0 {
		summary = append(summary, fmt.Sprintf("%.3fs", seconds))
	}
	if size, err := strconv.ParseUint(result.Format.Size, 10, 64); err == nil {
		summary = append(summary, humanize.Bytes(size))
	}
	fmt.Fprintln(out, strings.Join(summary, "  "))

	tags := make(map[float64]map[string]string, len(result.Streams))
	for _, s := range result.Streams {
		tags[float64(s.Index)] = s.Tags
	}

	for _, stream := range streams {
		if index, ok := stream["index"].(float64); ok {
			if code := language.FromTags(tags[index]); code != "" {
				stream["language"] = language.DisplayName(code)
			}
		}
		keys := make([]string, 0, len(stream))
		for k := range stream {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{k, formatProperty(printer, stream[k])})
		}
		title := fmt.Sprintf("stream %v: %v", stream["index"], stream["codec_type"])
		fmt.Fprintln(out, renderTable(title, propertyColumns, rows))
	}
	return nil
}

// formatProperty groups digits of whole numbers; everything else prints as
// ffprobe reported it.
func formatProperty(printer *message.Printer, value any) string {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return printer.Sprintf("%d", int64(v))
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return printer.Sprintf("%d", n)
		}
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func requireRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}
