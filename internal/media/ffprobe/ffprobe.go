package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// ErrNotMedia reports that ffprobe ran but rejected the file, which usually
// means the input is not an audio/video container.
var ErrNotMedia = errors.New("ffprobe rejected input")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	CodecTag     string            `json:"codec_tag_string"`
	Duration     string            `json:"duration"`
	BitRate      string            `json:"bit_rate"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	RFrameRate   string            `json:"r_frame_rate"`
	NBFrames     string            `json:"nb_frames"`
	SampleRate   string            `json:"sample_rate"`
	Channels     int               `json:"channels"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
// A non-zero ffprobe exit is reported as ErrNotMedia; failing to start the
// binary or decode its output is returned as-is.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return Result{}, fmt.Errorf("%w: %s", ErrNotMedia, strings.TrimSpace(stderr.String()))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON document.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), data...)
	return result, nil
}

// FirstAudio returns the first audio stream.
func (r Result) FirstAudio() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			return stream, true
		}
	}
	return Stream{}, false
}

// FirstVideo returns the first video stream that is not embedded cover art.
func (r Result) FirstVideo() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && !stream.AttachedPicture() {
			return stream, true
		}
	}
	return Stream{}, false
}

// AttachedPicture reports whether the stream is cover art rather than motion video.
func (s Stream) AttachedPicture() bool {
	return s.Disposition["attached_pic"] == 1
}

// BitRateValue returns the stream bitrate in bits per second, or 0 when unavailable.
func (s Stream) BitRateValue() int64 {
	return nonNegativeInt(s.BitRate)
}

// FrameCount returns nb_frames, or 0 when unavailable.
func (s Stream) FrameCount() int64 {
	return nonNegativeInt(s.NBFrames)
}

// FormatNames splits the comma-joined format_name into individual tags.
func (r Result) FormatNames() []string {
	parts := strings.Split(r.Format.FormatName, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// StreamProperties decodes every stream as a generic property map, dropping
// the nested disposition and tags objects.
func (r Result) StreamProperties() ([]map[string]any, error) {
	var doc struct {
		Streams []map[string]any `json:"streams"`
	}
	if err := json.Unmarshal(r.raw, &doc); err != nil {
		return nil, fmt.Errorf("ffprobe parse: %w", err)
	}
	for _, stream := range doc.Streams {
		delete(stream, "disposition")
		delete(stream, "tags")
	}
	return doc.Streams, nil
}

func nonNegativeInt(value string) int64 {
	parsed := parseFloat(value)
	if math.IsNaN(parsed) || parsed < 0 {
		return 0
	}
	return int64(parsed)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == "N/A" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
