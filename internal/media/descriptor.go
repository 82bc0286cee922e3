package media

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// AudioStream holds the properties of the first audio stream.
type AudioStream struct {
	Codec   string
	BitRate int64
}

// VideoStream holds the properties of the first motion video stream.
type VideoStream struct {
	Codec     string
	BitRate   int64
	Width     int
	Height    int
	FrameRate Rational
	Frames    int64
}

// Descriptor is the probed view of one media file. Zero numeric values mean
// "unknown". Descriptors are values; use Clone before handing one to code
// that may edit the Formats slice.
type Descriptor struct {
	Path     string
	Formats  []string
	Duration float64
	HasAudio bool
	HasVideo bool
	Audio    AudioStream
	Video    VideoStream
}

// Clone returns an independent copy.
func (d Descriptor) Clone() Descriptor {
	d.Formats = slices.Clone(d.Formats)
	return d
}

// FPS returns the video frame rate in frames per second, 0 when unknown.
func (d Descriptor) FPS() float64 {
	return d.Video.FrameRate.Float()
}

// Suffix returns the lowercased file extension including the dot.
func (d Descriptor) Suffix() string {
	return strings.ToLower(filepath.Ext(d.Path))
}

// Stem returns the file name without directory or extension.
func (d Descriptor) Stem() string {
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasFormat reports whether ffprobe listed the container tag.
func (d Descriptor) HasFormat(name string) bool {
	return slices.Contains(d.Formats, name)
}

// Diff lists the properties that differ between d and other as
// "name: old -> new" entries, in a fixed order.
func (d Descriptor) Diff(other Descriptor) []string {
	var changes []string
	add := func(name string, from, to any) {
		if from != to {
			changes = append(changes, fmt.Sprintf("%s: %v -> %v", name, from, to))
		}
	}
	add("path", d.Path, other.Path)
	add("duration", d.Duration, other.Duration)
	add("has_video", d.HasVideo, other.HasVideo)
	add("video_codec", d.Video.Codec, other.Video.Codec)
	add("video_bitrate", d.Video.BitRate, other.Video.BitRate)
	add("height", d.Video.Height, other.Video.Height)
	add("fps", d.Video.FrameRate.String(), other.Video.FrameRate.String())
	add("has_audio", d.HasAudio, other.HasAudio)
	add("audio_codec", d.Audio.Codec, other.Audio.Codec)
	add("audio_bitrate", d.Audio.BitRate, other.Audio.BitRate)
	return changes
}
