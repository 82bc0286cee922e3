package media

import (
	"context"
	"errors"

	"squeeze/internal/media/ffprobe"
	"squeeze/internal/services"
)

// inspect is the ffprobe runner used by Probe. It is a package-level
// variable so tests can override it.
var inspect = ffprobe.Inspect

// SetInspectForTests overrides the ffprobe runner during tests.
func SetInspectForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := inspect
	inspect = fn
	return func() {
		inspect = previous
	}
}

// Probe inspects path and returns its descriptor. Every failure, including a
// file ffprobe rejects or one without audio or video, is services.ErrProbe
// unless ctx was cancelled.
func Probe(ctx context.Context, binary, path string) (Descriptor, error) {
	result, err := inspect(ctx, binary, path)
	if err != nil {
		if ctx.Err() != nil {
			return Descriptor{}, services.Wrap(services.ErrInterrupted, "probe", path, "", ctx.Err())
		}
		if errors.Is(err, ffprobe.ErrNotMedia) {
			return Descriptor{}, services.Wrap(services.ErrProbe, "probe", path, "not a recognized audio/video container", err)
		}
		return Descriptor{}, services.Wrap(services.ErrProbe, "probe", path, "", err)
	}
	desc, err := FromResult(path, result)
	if err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

// FromResult converts parsed ffprobe output into a Descriptor.
func FromResult(path string, result ffprobe.Result) (Descriptor, error) {
	desc := Descriptor{
		Path:    path,
		Formats: result.FormatNames(),
	}
	if duration := result.DurationSeconds(); duration > 0 {
		desc.Duration = duration
	}

	if stream, ok := result.FirstAudio(); ok {
		desc.HasAudio = true
		desc.Audio = AudioStream{
			Codec:   stream.CodecName,
			BitRate: stream.BitRateValue(),
		}
	}
	if stream, ok := result.FirstVideo(); ok {
		rate, err := ParseRational(stream.AvgFrameRate)
		if err != nil {
			return Descriptor{}, services.Wrap(services.ErrProbe, "probe", path, "frame rate", err)
		}
		desc.HasVideo = true
		desc.Video = VideoStream{
			Codec:     stream.CodecName,
			BitRate:   stream.BitRateValue(),
			Width:     stream.Width,
			Height:    stream.Height,
			FrameRate: rate,
			Frames:    stream.FrameCount(),
		}
	}

	if !desc.HasAudio && !desc.HasVideo {
		return Descriptor{}, services.Wrap(services.ErrProbe, "probe", path, "not a recognized audio/video container: no audio or video streams", nil)
	}
	return desc, nil
}
