package encoding

import (
	"strings"

	"github.com/samber/lo"

	"squeeze/internal/media"
)

var containerAudioCodecs = map[string]string{
	"webm": "libopus",
	"ogg":  "libvorbis",
	"wav":  "pcm_s16le",
	"flac": "flac",
}

var webmVideoCodecs = []string{"libvpx-vp9", "libsvtav1", "libaom-av1"}

// selectFormat picks the output container for actions that keep the input
// suffix. ffprobe often lists several tags for one demuxer ("mov,mp4,m4a");
// mp3 and mp4 win, then the tag matching the suffix, then the first tag.
func selectFormat(in media.Descriptor) string {
	suffix := in.Suffix()
	if suffix == ".mp3" {
		return "mp3"
	}
	name := strings.TrimPrefix(suffix, ".")
	switch len(in.Formats) {
	case 0:
		return name
	case 1:
		return in.Formats[0]
	}
	for _, preferred := range []string{"mp3", "mp4", name} {
		if in.HasFormat(preferred) {
			return preferred
		}
	}
	return in.Formats[0]
}

func audioCodecForFormat(format string, p Profile) string {
	if format == p.AudioFormat {
		return p.AudioOnlyCodec
	}
	if codec, ok := containerAudioCodecs[format]; ok {
		return codec
	}
	return p.AudioCodec
}

func videoCodecForFormat(format string, p Profile) string {
	if format == "webm" && !lo.Contains(webmVideoCodecs, p.VideoCodec) {
		return "libvpx-vp9"
	}
	return p.VideoCodec
}
