package encoding

import (
	"math"

	"squeeze/internal/media"
)

// Normalize derives output parameters from a probed input and a profile. The
// result never exceeds a known input bitrate, frame rate, or height; unknown
// input values fall back to the profile ceiling. The returned descriptor is an
// independent copy and keeps the input path.
func Normalize(in media.Descriptor, p Profile) media.Descriptor {
	if !in.HasVideo {
		return NormalizeAudio(in, p)
	}
	out := in.Clone()
	out.Formats = []string{p.VideoFormat}
	out.Audio = media.AudioStream{}
	if in.HasAudio {
		out.Audio = media.AudioStream{
			Codec:   p.AudioCodec,
			BitRate: capValue(in.Audio.BitRate, p.AudioBitrate),
		}
	}
	height := capHeight(in.Video, p.Height)
	out.Video = media.VideoStream{
		Codec:     p.VideoCodec,
		BitRate:   capValue(in.Video.BitRate, p.VideoBitrate),
		Width:     scaledWidth(in.Video, height),
		Height:    height,
		FrameRate: capRate(in.Video.FrameRate, p.FPS),
	}
	return out
}

// NormalizeAudio applies the audio-only branch: video is dropped and the
// container switches to the profile's audio format.
func NormalizeAudio(in media.Descriptor, p Profile) media.Descriptor {
	out := in.Clone()
	out.HasVideo = false
	out.Video = media.VideoStream{}
	out.Formats = []string{p.AudioFormat}
	if in.HasAudio {
		out.Audio = media.AudioStream{
			Codec:   p.AudioOnlyCodec,
			BitRate: capValue(in.Audio.BitRate, p.AudioBitrate),
		}
	}
	return out
}

func capValue(input, ceiling int64) int64 {
	if input <= 0 || input > ceiling {
		return ceiling
	}
	return input
}

func capHeight(v media.VideoStream, ceiling int) int {
	height := ceiling
	for _, dim := range []int{v.Height, v.Width} {
		if dim > 0 && dim < height {
			height = dim
		}
	}
	return height
}

func capRate(input media.Rational, ceiling int64) media.Rational {
	if !input.Known() || input.Float() > float64(ceiling) {
		return media.Whole(ceiling)
	}
	return input
}

func scaledWidth(v media.VideoStream, height int) int {
	if v.Width <= 0 || v.Height <= 0 {
		return 0
	}
	// scale=trunc(oh*a/2)*2 keeps the aspect ratio on an even width.
	width := float64(height) * float64(v.Width) / float64(v.Height)
	return int(math.Trunc(width/2)) * 2
}
