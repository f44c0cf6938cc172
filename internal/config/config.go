package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/glimpse/internal/viewport"
)

// EnvPath names an extra config file loaded after the default locations.
const EnvPath = "GLIMPSE_CONFIG"

// BackgroundChecks selects the checkerboard background.
const BackgroundChecks = "checks"

// Upscaling methods.
const (
	UpscalingLinear  = "linear"
	UpscalingNearest = "nearest_neighbour"
)

// Image protocols.
const (
	ProtocolAuto   = "auto"
	ProtocolKitty  = "kitty"
	ProtocolSixel  = "sixel"
	ProtocolBlocks = "blocks"
)

type Config struct {
	Overlay           bool              `koanf:"overlay"`
	OverlayText       string            `koanf:"overlay_text"`
	TitleText         string            `koanf:"title_text"`
	Recursive         bool              `koanf:"recursive"`
	LoopInput         *bool             `koanf:"loop_input"` // default: true
	ListFilesAtExit   bool              `koanf:"list_files_at_exit"`
	ScalingMode       string            `koanf:"scaling_mode"`     // "none", "shrink" or "full" (default: "full")
	UpscalingMethod   string            `koanf:"upscaling_method"` // "linear" or "nearest_neighbour"
	Background        string            `koanf:"background"`       // "checks" or a hex colour
	SlideshowDuration float64           `koanf:"slideshow_duration"`
	Ignore            []string          `koanf:"ignore"`
	ImageProtocol     string            `koanf:"image_protocol"` // "auto", "kitty", "sixel" or "blocks"
	Watch             []string          `koanf:"watch"`          // directories to watch for new images
	Resume            bool              `koanf:"resume"`
	LogLevel          string            `koanf:"log_level"`
	Binds             map[string]string `koanf:"binds"` // key -> command
}

// Load reads the config files in order of priority, last wins.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadWith is Load with one more file on top of the default locations.
// Unlike the defaults, extra must exist.
func LoadWith(extra string) (*Config, error) {
	extra = ExpandPath(extra)
	if _, err := os.Stat(extra); err != nil {
		return nil, err
	}
	return LoadFrom(append(getConfigPaths(), extra)...)
}

// LoadFrom reads the given files, skipping those that do not exist.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, dir := range cfg.Watch {
		cfg.Watch[i] = ExpandPath(dir)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{
		// 1. $XDG_CONFIG_HOME/glimpse/config.toml
		filepath.Join(xdg.ConfigHome, "glimpse", "config.toml"),
		// 2. ./glimpse.toml
		"glimpse.toml",
	}

	// 3. $GLIMPSE_CONFIG, highest priority
	if env := os.Getenv(EnvPath); env != "" {
		paths = append(paths, ExpandPath(env))
	}

	return paths
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetLoopInput reports whether navigation wraps past the ends of the list.
func (c *Config) GetLoopInput() bool {
	if c.LoopInput == nil {
		return true
	}
	return *c.LoopInput
}

// GetScalingMode returns the scaling mode, defaulting to full.
func (c *Config) GetScalingMode() viewport.ScalingMode {
	mode, err := viewport.ParseScalingMode(c.ScalingMode)
	if err != nil {
		return viewport.ScalingFull
	}
	return mode
}

// GetUpscalingMethod returns "linear" unless nearest neighbour is set.
func (c *Config) GetUpscalingMethod() string {
	if c.UpscalingMethod == UpscalingNearest {
		return UpscalingNearest
	}
	return UpscalingLinear
}

// GetSlideshowDuration returns the slideshow duration in seconds, 0 when off.
func (c *Config) GetSlideshowDuration() float64 {
	if c.SlideshowDuration < 0 {
		return 0
	}
	return c.SlideshowDuration
}

// GetImageProtocol returns the configured protocol, defaulting to auto.
func (c *Config) GetImageProtocol() string {
	switch p := strings.ToLower(c.ImageProtocol); p {
	case ProtocolKitty, ProtocolSixel, ProtocolBlocks:
		return p
	default:
		return ProtocolAuto
	}
}

// GetLogLevel returns the log level, defaulting to info.
func (c *Config) GetLogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// GetBackground parses the background setting. checks is true for the
// checkerboard, otherwise col holds the colour. The default is black.
func (c *Config) GetBackground() (col color.Color, checks bool, err error) {
	return ParseBackground(c.Background)
}

// ParseBackground parses "checks" or a hex colour with or without '#'.
func ParseBackground(s string) (col color.Color, checks bool, err error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return color.Black, false, nil
	case strings.EqualFold(s, BackgroundChecks):
		return nil, true, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return nil, false, fmt.Errorf("invalid background %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, false, nil
}
