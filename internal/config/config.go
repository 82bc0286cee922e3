package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Binaries names the external tools squeeze drives.
type Binaries struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Encoding contains codec selection and quality ceilings shared by every profile.
type Encoding struct {
	VideoEncoder     string         `toml:"video_encoder"`
	AudioEncoder     string         `toml:"audio_encoder"`
	AudioOnlyEncoder string         `toml:"audio_only_encoder"`
	AV1Encoder       string         `toml:"av1_encoder"`
	AV1BitrateScale  float64        `toml:"av1_bitrate_scale"`
	RateControlMode  string         `toml:"rate_control_mode"`
	HeightCeiling    int            `toml:"height_ceiling"`
	CRF              map[string]int `toml:"crf"`
}

// Profile holds the bitrate and frame rate ceilings for one output flavour.
type Profile struct {
	AudioBitrate int64 `toml:"audio_bitrate"`
	VideoBitrate int64 `toml:"video_bitrate"`
	FPS          int   `toml:"fps"`
}

// Profiles contains the built-in output flavours.
type Profiles struct {
	Default  Profile `toml:"default"`
	Tutorial Profile `toml:"tutorial"`
}

// Display contains terminal rendering preferences.
type Display struct {
	BarWidth int    `toml:"bar_width"`
	Color    string `toml:"color"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Runtime contains process coordination settings.
type Runtime struct {
	Serialize bool   `toml:"serialize"`
	LockPath  string `toml:"lock_path"`
}

// Config encapsulates all configuration values for squeeze.
//
// Configuration sections by subsystem:
//   - Binaries: ffmpeg and ffprobe executables
//   - Encoding: codecs, rate control, height ceiling, CRF table
//   - Profiles: default and tutorial bitrate/fps ceilings
//   - Display: progress bar width and color policy
//   - Logging: log format, level, and optional file
//   - Runtime: cross-process encode serialization
type Config struct {
	Binaries Binaries `toml:"binaries"`
	Encoding Encoding `toml:"encoding"`
	Profiles Profiles `toml:"profiles"`
	Display  Display  `toml:"display"`
	Logging  Logging  `toml:"logging"`
	Runtime  Runtime  `toml:"runtime"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// EnvConfigPath overrides the config location when --config is not given.
const EnvConfigPath = "SQUEEZE_CONFIG"

// resolveConfigPath picks the explicit path, then $SQUEEZE_CONFIG, then the
// first existing of the user and project files. A missing explicit file is
// not an error; defaults apply.
func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := regularFileExists(expanded)
		return expanded, exists, err
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("squeeze.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if ok, _ := regularFileExists(candidate); ok {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func regularFileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// FFmpegBinary returns the ffmpeg executable used for encoding.
func (c *Config) FFmpegBinary() string {
	if v := strings.TrimSpace(c.Binaries.FFmpeg); v != "" {
		return v
	}
	return defaultFFmpeg
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	if v := strings.TrimSpace(c.Binaries.FFprobe); v != "" {
		return v
	}
	return defaultFFprobe
}

// Profile returns the ceilings for the requested flavour.
func (c *Config) Profile(tutorial bool) Profile {
	if tutorial {
		return c.Profiles.Tutorial
	}
	return c.Profiles.Default
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLockPath() string {
	if base, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "squeeze.lock")
	}
	return filepath.Join(os.TempDir(), "squeeze.lock")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
