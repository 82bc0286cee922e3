package deps

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// MediaRequirements lists the binaries every squeeze action needs.
func MediaRequirements(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Encodes, trims, and retimes media"},
		{Name: "FFprobe", Command: ffprobe, Description: "Reads stream properties"},
	}
}

// EncoderStatus reports whether ffmpeg was built with an encoder.
type EncoderStatus struct {
	Name      string
	Available bool
}

// CheckEncoders asks ffmpeg which encoders it was built with and reports on
// each requested name. Duplicate and blank names are dropped.
func CheckEncoders(ctx context.Context, ffmpeg string, encoders []string) ([]EncoderStatus, error) {
	out, err := commandContext(ctx, ffmpeg, "-hide_banner", "-encoders").Output() //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("list ffmpeg encoders: %w", err)
	}
	built := parseEncoders(string(out))
	names := lo.Uniq(lo.Compact(lo.Map(encoders, func(name string, _ int) string {
		return strings.ToLower(strings.TrimSpace(name))
	})))
	return lo.Map(names, func(name string, _ int) EncoderStatus {
		_, ok := built[name]
		return EncoderStatus{Name: name, Available: ok}
	}), nil
}

// parseEncoders reads `ffmpeg -encoders` output. Listing rows start with a
// six-character capability field such as "V....D" followed by the name; the
// legend above the "------" separator is skipped.
func parseEncoders(output string) map[string]struct{} {
	encoders := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(output))
	listing := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !listing {
			listing = strings.HasPrefix(line, "------")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields[0]) != 6 {
			continue
		}
		encoders[fields[1]] = struct{}{}
	}
	return encoders
}
