package config

const (
	defaultConfigPath       = "~/.config/squeeze/config.toml"
	defaultFFmpeg           = "ffmpeg"
	defaultFFprobe          = "ffprobe"
	defaultVideoEncoder     = "libx264"
	defaultAudioEncoder     = "aac"
	defaultAudioOnlyEncoder = "libmp3lame"
	defaultAV1Encoder       = "libsvtav1"
	defaultAV1BitrateScale  = 0.75
	defaultRateControlMode  = "CRF"
	defaultHeightCeiling    = 720
	defaultAudioBitrate     = 128000
	defaultVideoBitrate     = 2000000
	defaultFPS              = 25
	tutorialVideoBitrate    = 500000
	tutorialFPS             = 10
	defaultBarWidth         = 60
	defaultColor            = "auto"
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Binaries: Binaries{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Encoding: Encoding{
			VideoEncoder:     defaultVideoEncoder,
			AudioEncoder:     defaultAudioEncoder,
			AudioOnlyEncoder: defaultAudioOnlyEncoder,
			AV1Encoder:       defaultAV1Encoder,
			AV1BitrateScale:  defaultAV1BitrateScale,
			RateControlMode:  defaultRateControlMode,
			HeightCeiling:    defaultHeightCeiling,
		},
		Profiles: Profiles{
			Default: Profile{
				AudioBitrate: defaultAudioBitrate,
				VideoBitrate: defaultVideoBitrate,
				FPS:          defaultFPS,
			},
			Tutorial: Profile{
				AudioBitrate: defaultAudioBitrate,
				VideoBitrate: tutorialVideoBitrate,
				FPS:          tutorialFPS,
			},
		},
		Display: Display{
			BarWidth: defaultBarWidth,
			Color:    defaultColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Runtime: Runtime{
			Serialize: false,
			LockPath:  defaultLockPath(),
		},
	}
}
