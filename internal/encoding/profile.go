package encoding

import (
	"fmt"
	"strings"

	"squeeze/internal/config"
	"squeeze/internal/services"
)

// RateControl selects how the video bitrate is governed.
type RateControl string

const (
	RateControlCRF RateControl = "CRF"
	RateControlCBR RateControl = "CBR"
)

// ParseRateControl accepts CRF or CBR in any case.
func ParseRateControl(value string) (RateControl, error) {
	switch RateControl(strings.ToUpper(strings.TrimSpace(value))) {
	case RateControlCRF, "":
		return RateControlCRF, nil
	case RateControlCBR:
		return RateControlCBR, nil
	default:
		return "", services.Wrap(services.ErrValidation, "profile", "rate control", fmt.Sprintf("unsupported mode %q (want CRF or CBR)", value), nil)
	}
}

const fallbackCRF = 27

var defaultCRF = map[string]int{
	"libx264":    27,
	"libx265":    28,
	"libsvtav1":  42,
	"libaom-av1": 42,
	"libvpx-vp9": 42,
}

// Profile is the set of ceilings and codec choices a task may not exceed.
type Profile struct {
	AudioBitrate   int64
	VideoBitrate   int64
	FPS            int64
	Height         int
	AudioCodec     string
	AudioOnlyCodec string
	VideoCodec     string
	VideoFormat    string
	VideoSuffix    string
	AudioFormat    string
	AudioSuffix    string
	RateControl    RateControl
	CRF            map[string]int
}

// ProfileOptions carries the command line choices that shape a Profile.
type ProfileOptions struct {
	Tutorial     bool
	AV1          bool
	VideoEncoder string
	RateControl  string
}

// ProfileFromConfig resolves the effective profile for one invocation.
func ProfileFromConfig(cfg *config.Config, opts ProfileOptions) (Profile, error) {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	mode := opts.RateControl
	if strings.TrimSpace(mode) == "" {
		mode = cfg.Encoding.RateControlMode
	}
	rc, err := ParseRateControl(mode)
	if err != nil {
		return Profile{}, err
	}

	base := cfg.Profile(opts.Tutorial)
	profile := Profile{
		AudioBitrate:   base.AudioBitrate,
		VideoBitrate:   base.VideoBitrate,
		FPS:            int64(base.FPS),
		Height:         cfg.Encoding.HeightCeiling,
		AudioCodec:     cfg.Encoding.AudioEncoder,
		AudioOnlyCodec: cfg.Encoding.AudioOnlyEncoder,
		VideoCodec:     cfg.Encoding.VideoEncoder,
		VideoFormat:    "mp4",
		VideoSuffix:    ".mp4",
		AudioFormat:    "mp3",
		AudioSuffix:    ".mp3",
		RateControl:    rc,
		CRF:            mergeCRF(cfg.Encoding.CRF),
	}
	if opts.AV1 {
		profile.VideoCodec = cfg.Encoding.AV1Encoder
		profile.VideoBitrate = int64(float64(profile.VideoBitrate) * cfg.Encoding.AV1BitrateScale)
	}
	if enc := strings.ToLower(strings.TrimSpace(opts.VideoEncoder)); enc != "" {
		profile.VideoCodec = enc
	}
	return profile, nil
}

// CRFFor returns the constant rate factor for codec.
func (p Profile) CRFFor(codec string) int {
	if v, ok := p.CRF[codec]; ok {
		return v
	}
	if v, ok := defaultCRF[codec]; ok {
		return v
	}
	return fallbackCRF
}

func mergeCRF(overrides map[string]int) map[string]int {
	table := make(map[string]int, len(defaultCRF)+len(overrides))
	for codec, v := range defaultCRF {
		table[codec] = v
	}
	for codec, v := range overrides {
		table[codec] = v
	}
	return table
}
