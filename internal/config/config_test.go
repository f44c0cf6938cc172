//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/glimpse/internal/viewport"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/pictures",
			expected: filepath.Join(home, "pictures"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/pictures/2024/trip",
			expected: filepath.Join(home, "pictures", "2024", "trip"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/images",
			expected: "/srv/images",
		},
		{
			name:     "relative path unchanged",
			input:    "images/raw",
			expected: "images/raw",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandPath(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	t.Setenv(EnvPath, "")
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}
	if paths[1] != "glimpse.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "glimpse.toml")
	}
	if filepath.Base(filepath.Dir(paths[0])) != "glimpse" {
		t.Errorf("first config path = %q, want a glimpse config dir", paths[0])
	}
}

func TestGetConfigPaths_Env(t *testing.T) {
	t.Setenv(EnvPath, "/etc/glimpse.toml")
	paths := getConfigPaths()

	if last := paths[len(paths)-1]; last != "/etc/glimpse.toml" {
		t.Errorf("last config path = %q, want %q", last, "/etc/glimpse.toml")
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	base := writeConfig(t, dir, "base.toml", `
overlay = true
scaling_mode = "shrink"
slideshow_duration = 2.5
ignore = ["*.txt", "**/thumbs/*"]
watch = ["~/incoming"]

[binds]
q = "quit"
"<Right>" = "next"
`)
	override := writeConfig(t, dir, "override.toml", `
scaling_mode = "none"
loop_input = false
`)

	cfg, err := LoadFrom(base, filepath.Join(dir, "missing.toml"), override)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if !cfg.Overlay {
		t.Error("Overlay = false, want true")
	}
	if cfg.GetScalingMode() != viewport.ScalingNone {
		t.Errorf("GetScalingMode() = %v, want none", cfg.GetScalingMode())
	}
	if cfg.GetLoopInput() {
		t.Error("GetLoopInput() = true, want false")
	}
	if cfg.GetSlideshowDuration() != 2.5 {
		t.Errorf("GetSlideshowDuration() = %v, want 2.5", cfg.GetSlideshowDuration())
	}
	if len(cfg.Ignore) != 2 {
		t.Errorf("Ignore = %v, want 2 patterns", cfg.Ignore)
	}
	if cfg.Binds["q"] != "quit" || cfg.Binds["<Right>"] != "next" {
		t.Errorf("Binds = %v", cfg.Binds)
	}
	if home, err := os.UserHomeDir(); err == nil {
		if want := filepath.Join(home, "incoming"); cfg.Watch[0] != want {
			t.Errorf("Watch[0] = %q, want %q", cfg.Watch[0], want)
		}
	}
}

func TestLoadFrom_ParseError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.toml", "overlay = = true")

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil, want parse error")
	}
}

func TestLoadWith(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvPath, "")
	path := writeConfig(t, dir, "extra.toml", "title_text = \"extra\"\nresume = true")

	cfg, err := LoadWith(path)
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}
	if cfg.TitleText != "extra" {
		t.Errorf("TitleText = %q, want %q", cfg.TitleText, "extra")
	}
	if !cfg.Resume {
		t.Error("Resume = false, want true")
	}
}

func TestLoadWith_Missing(t *testing.T) {
	if _, err := LoadWith(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadWith() error = nil, want error for missing file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Config{}

	if !cfg.GetLoopInput() {
		t.Error("GetLoopInput() = false, want true")
	}
	if cfg.GetScalingMode() != viewport.ScalingFull {
		t.Errorf("GetScalingMode() = %v, want full", cfg.GetScalingMode())
	}
	if cfg.GetUpscalingMethod() != UpscalingLinear {
		t.Errorf("GetUpscalingMethod() = %q, want %q", cfg.GetUpscalingMethod(), UpscalingLinear)
	}
	if cfg.GetImageProtocol() != ProtocolAuto {
		t.Errorf("GetImageProtocol() = %q, want %q", cfg.GetImageProtocol(), ProtocolAuto)
	}
	if cfg.GetLogLevel() != logrus.InfoLevel {
		t.Errorf("GetLogLevel() = %v, want info", cfg.GetLogLevel())
	}
	if cfg.GetSlideshowDuration() != 0 {
		t.Errorf("GetSlideshowDuration() = %v, want 0", cfg.GetSlideshowDuration())
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	cfg := Config{
		ScalingMode:       "stretch",
		UpscalingMethod:   "cubic",
		ImageProtocol:     "iterm",
		LogLevel:          "loud",
		SlideshowDuration: -3,
	}

	if cfg.GetScalingMode() != viewport.ScalingFull {
		t.Errorf("GetScalingMode() = %v, want full", cfg.GetScalingMode())
	}
	if cfg.GetUpscalingMethod() != UpscalingLinear {
		t.Errorf("GetUpscalingMethod() = %q, want linear", cfg.GetUpscalingMethod())
	}
	if cfg.GetImageProtocol() != ProtocolAuto {
		t.Errorf("GetImageProtocol() = %q, want auto", cfg.GetImageProtocol())
	}
	if cfg.GetLogLevel() != logrus.InfoLevel {
		t.Errorf("GetLogLevel() = %v, want info", cfg.GetLogLevel())
	}
	if cfg.GetSlideshowDuration() != 0 {
		t.Errorf("GetSlideshowDuration() = %v, want 0", cfg.GetSlideshowDuration())
	}
}

func TestParseBackground(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantColor  color.Color
		wantChecks bool
		wantErr    bool
	}{
		{name: "empty is black", input: "", wantColor: color.Black},
		{name: "checks", input: "checks", wantChecks: true},
		{name: "checks any case", input: "CHECKS", wantChecks: true},
		{name: "hex with hash", input: "#ff8000", wantColor: color.RGBA{R: 0xff, G: 0x80, A: 0xff}},
		{name: "hex without hash", input: "102030", wantColor: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{name: "short hex", input: "#fff", wantColor: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{name: "invalid", input: "purple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, checks, err := ParseBackground(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBackground(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if checks != tt.wantChecks {
				t.Errorf("checks = %v, want %v", checks, tt.wantChecks)
			}
			if col != tt.wantColor {
				t.Errorf("color = %v, want %v", col, tt.wantColor)
			}
		})
	}
}
