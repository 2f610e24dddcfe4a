package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default CRF values per codec family. H.265 tolerates a higher CRF
// than H.264 for comparable visual quality.
const (
	DefaultQualityH264 = 23
	DefaultQualityH265 = 28
)

type Config struct {
	// FFmpegPath is the path to the ffmpeg binary (default: "ffmpeg")
	FFmpegPath string `yaml:"ffmpeg_path"`

	// FFprobePath is the path to the ffprobe binary (default: "ffprobe")
	FFprobePath string `yaml:"ffprobe_path"`

	// SetFilePath is the path to the macOS SetFile utility used to
	// write birth times (default: "SetFile"). Ignored elsewhere.
	SetFilePath string `yaml:"setfile_path"`

	// Codec is the abstract codec family: "h264" or "h265"
	Codec string `yaml:"codec"`

	// Quality is the CRF value (lower = higher quality). 0 means the
	// per-codec default (23 for h264, 28 for h265).
	Quality int `yaml:"quality"`

	// Preset is the encoder speed preset, software path only
	// (default: "medium")
	Preset string `yaml:"preset"`

	// Hardware enables the hardware-accelerated encoder where the
	// platform supports one
	Hardware bool `yaml:"hardware"`

	// LogLevel is one of debug, info, warn, error (default: "info")
	LogLevel string `yaml:"log_level"`

	// HistoryPath is where the run-history database is kept
	// (default: <config dir>/timepress/history.db)
	HistoryPath string `yaml:"history_path"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		SetFilePath: "SetFile",
		Codec:       "h264",
		Preset:      "medium",
		LogLevel:    "info",
	}
}

// Load reads config from a YAML file, applying defaults for missing values.
// A missing file is not an error — defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply defaults for empty values
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if cfg.SetFilePath == "" {
		cfg.SetFilePath = "SetFile"
	}
	if cfg.Codec == "" {
		cfg.Codec = "h264"
	}
	if cfg.Preset == "" {
		cfg.Preset = "medium"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the encoder mapping cannot express.
func (c *Config) Validate() error {
	switch c.Codec {
	case "h264", "h265":
	default:
		return fmt.Errorf("unknown codec %q (want h264 or h265)", c.Codec)
	}
	if c.Quality < 0 || c.Quality > 51 {
		return fmt.Errorf("quality %d out of range (0-51, 0 = codec default)", c.Quality)
	}
	return nil
}

// EffectiveQuality returns the configured CRF, or the per-codec default
// when Quality is unset.
func (c *Config) EffectiveQuality() int {
	if c.Quality != 0 {
		return c.Quality
	}
	if c.Codec == "h265" {
		return DefaultQualityH265
	}
	return DefaultQualityH264
}

// Save writes the config to a YAML file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// HistoryDBPath returns the configured history database location, or the
// default under the user config directory.
func (c *Config) HistoryDBPath() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "timepress", "history.db")
}
