// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"github.com/user/gifclip/pkg/caption"
	"github.com/user/gifclip/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Config represents the ambient configuration for gifclip.
// Export parameters (frame rate, width, duration limits) are fixed and
// not configurable.
type Config struct {
	// Tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Caption
	FontPath string        `yaml:"font_path"`
	Caption  CaptionConfig `yaml:"caption"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Language string `yaml:"language"`

	// Editor
	Theme ThemeConfig `yaml:"theme"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// CaptionConfig holds the caption defaults a session starts with.
type CaptionConfig struct {
	Text             string  `yaml:"text"`
	FontSize         int     `yaml:"font_size"`
	VerticalFraction float64 `yaml:"vertical_fraction"`
}

// ThemeConfig represents the editor colors, as hex strings.
type ThemeConfig struct {
	AccentColor string `yaml:"accent_color"`
	MutedColor  string `yaml:"muted_color"`
	ErrorColor  string `yaml:"error_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	style := caption.DefaultStyle()
	return Config{
		Caption: CaptionConfig{
			Text:             style.Text,
			FontSize:         style.FontSize,
			VerticalFraction: style.VerticalFraction,
		},

		LogLevel: "info",

		Theme: ThemeConfig{
			AccentColor: "#4ade80",
			MutedColor:  "#6b7280",
			ErrorColor:  "#f87171",
		},

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from
// the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Load returns Defaults when path is empty, else LoadFromFile(path).
func Load(path string) (Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	return LoadFromFile(path)
}

// CaptionStyle returns the configured caption, clamped to the valid ranges.
func (c Config) CaptionStyle() caption.Style {
	return caption.NewStyle(c.Caption.Text, c.Caption.FontSize, c.Caption.VerticalFraction)
}

// Level returns the configured log level.
func (c Config) Level() (ports.LogLevel, error) {
	return ports.ParseLogLevel(c.LogLevel)
}
