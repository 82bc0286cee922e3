package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateProfiles(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncoding() error {
	switch c.Encoding.RateControlMode {
	case "CRF", "CBR":
	default:
		return fmt.Errorf("encoding.rate_control_mode must be CRF or CBR, got %q", c.Encoding.RateControlMode)
	}
	if c.Encoding.HeightCeiling <= 0 {
		return errors.New("encoding.height_ceiling must be positive")
	}
	if c.Encoding.AV1BitrateScale <= 0 || c.Encoding.AV1BitrateScale > 1 {
		return errors.New("encoding.av1_bitrate_scale must be within (0, 1]")
	}
	for codec, value := range c.Encoding.CRF {
		if value < 0 || value > 63 {
			return fmt.Errorf("encoding.crf.%s must be between 0 and 63", codec)
		}
	}
	return nil
}

func (c *Config) validateProfiles() error {
	for name, profile := range map[string]Profile{
		"default":  c.Profiles.Default,
		"tutorial": c.Profiles.Tutorial,
	} {
		if err := ensurePositiveMap(map[string]int64{
			"profiles." + name + ".audio_bitrate": profile.AudioBitrate,
			"profiles." + name + ".video_bitrate": profile.VideoBitrate,
			"profiles." + name + ".fps":           int64(profile.FPS),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if c.Display.BarWidth < 10 || c.Display.BarWidth > 200 {
		return errors.New("display.bar_width must be between 10 and 200")
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("display.color must be auto, always, or never, got %q", c.Display.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int64) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
