package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeBinaries()
	c.normalizeEncoding()
	c.normalizeDisplay()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeRuntime()
}

func (c *Config) normalizeBinaries() {
	c.Binaries.FFmpeg = strings.TrimSpace(c.Binaries.FFmpeg)
	if c.Binaries.FFmpeg == "" {
		c.Binaries.FFmpeg = defaultFFmpeg
	}
	c.Binaries.FFprobe = strings.TrimSpace(c.Binaries.FFprobe)
	if c.Binaries.FFprobe == "" {
		c.Binaries.FFprobe = defaultFFprobe
	}
}

func (c *Config) normalizeEncoding() {
	c.Encoding.VideoEncoder = strings.ToLower(strings.TrimSpace(c.Encoding.VideoEncoder))
	if c.Encoding.VideoEncoder == "" {
		c.Encoding.VideoEncoder = defaultVideoEncoder
	}
	c.Encoding.AudioEncoder = strings.ToLower(strings.TrimSpace(c.Encoding.AudioEncoder))
	if c.Encoding.AudioEncoder == "" {
		c.Encoding.AudioEncoder = defaultAudioEncoder
	}
	c.Encoding.AudioOnlyEncoder = strings.ToLower(strings.TrimSpace(c.Encoding.AudioOnlyEncoder))
	if c.Encoding.AudioOnlyEncoder == "" {
		c.Encoding.AudioOnlyEncoder = defaultAudioOnlyEncoder
	}
	c.Encoding.AV1Encoder = strings.ToLower(strings.TrimSpace(c.Encoding.AV1Encoder))
	if c.Encoding.AV1Encoder == "" {
		c.Encoding.AV1Encoder = defaultAV1Encoder
	}
	if c.Encoding.AV1BitrateScale == 0 {
		c.Encoding.AV1BitrateScale = defaultAV1BitrateScale
	}
	c.Encoding.RateControlMode = strings.ToUpper(strings.TrimSpace(c.Encoding.RateControlMode))
	if c.Encoding.RateControlMode == "" {
		c.Encoding.RateControlMode = defaultRateControlMode
	}
	if len(c.Encoding.CRF) > 0 {
		table := make(map[string]int, len(c.Encoding.CRF))
		for codec, value := range c.Encoding.CRF {
			key := strings.ToLower(strings.TrimSpace(codec))
			if key == "" {
				continue
			}
			table[key] = value
		}
		c.Encoding.CRF = table
	}
}

func (c *Config) normalizeDisplay() {
	if c.Display.BarWidth == 0 {
		c.Display.BarWidth = defaultBarWidth
	}
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColor
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeRuntime() error {
	if strings.TrimSpace(c.Runtime.LockPath) == "" {
		c.Runtime.LockPath = defaultLockPath()
	}
	var err error
	if c.Runtime.LockPath, err = expandPath(strings.TrimSpace(c.Runtime.LockPath)); err != nil {
		return fmt.Errorf("runtime.lock_path: %w", err)
	}
	return nil
}
