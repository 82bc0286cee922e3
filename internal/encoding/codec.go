package encoding

import (
	"strconv"

	"squeeze/internal/ffmpeg"
)

const maxVP9CPUUsed = 8

// cpuCount reports the CPUs this process may run on. Tests override it.
var cpuCount = availableCPUs

type tuningFunc func(mode RateControl) []ffmpeg.Arg

// codecTunings holds encoder-specific options. Codecs without an entry get none.
var codecTunings = map[string]tuningFunc{
	"libx264":    x264Tuning,
	"libvpx-vp9": vp9Tuning,
	"libsvtav1":  svtav1Tuning,
}

// CodecTuning returns the encoder-specific options for codec.
func CodecTuning(codec string, mode RateControl) []ffmpeg.Arg {
	fn, ok := codecTunings[codec]
	if !ok {
		return nil
	}
	return fn(mode)
}

func x264Tuning(RateControl) []ffmpeg.Arg {
	return []ffmpeg.Arg{{Flag: "-profile:v", Value: "high"}}
}

func vp9Tuning(mode RateControl) []ffmpeg.Arg {
	var args []ffmpeg.Arg
	if mode == RateControlCRF {
		// constant quality in libvpx requires a zero target bitrate
		args = append(args, ffmpeg.Arg{Flag: "-b:v", Value: "0"})
	}
	return append(args,
		ffmpeg.Arg{Flag: "-row-mt", Value: "1"},
		ffmpeg.Arg{Flag: "-cpu-used", Value: strconv.Itoa(min(cpuCount(), maxVP9CPUUsed))},
		ffmpeg.Arg{Flag: "-tile-columns", Value: "1"},
		ffmpeg.Arg{Flag: "-tile-rows", Value: "1"},
	)
}

func svtav1Tuning(RateControl) []ffmpeg.Arg {
	return []ffmpeg.Arg{{Flag: "-svtav1-params", Value: "tile-columns=1:tile-rows=1:fast-decode=1"}}
}
