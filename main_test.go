package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/glimpse/internal/config"
	"github.com/llehouerou/glimpse/internal/navigator"
	"github.com/llehouerou/glimpse/internal/state"
	"github.com/llehouerou/glimpse/internal/viewport"
)

func parseFlags(t *testing.T, args ...string) (*cobra.Command, *cliFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "glimpse"}
	f := &cliFlags{}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, f
}

func TestApply_OnlyChangedFlags(t *testing.T) {
	cmd, f := parseFlags(t)
	cfg := &config.Config{Recursive: true, ScalingMode: "none", Background: "checks"}

	require.NoError(t, f.apply(cmd, cfg))

	assert.True(t, cfg.Recursive)
	assert.Equal(t, "none", cfg.ScalingMode)
	assert.Equal(t, "checks", cfg.Background)
	assert.True(t, cfg.GetLoopInput())
}

func TestApply_Overrides(t *testing.T) {
	cmd, f := parseFlags(t,
		"-r", "-d", "-x", "-l",
		"-s", "shrink", "-u", "nearest_neighbour", "-b", "ff0000",
		"-t", "2.5", "--protocol", "blocks", "--log-level", "debug",
		"--watch", "/tmp/a,/tmp/b",
	)
	cfg := &config.Config{Watch: []string{"/tmp/c"}}

	require.NoError(t, f.apply(cmd, cfg))

	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.Overlay)
	assert.False(t, cfg.GetLoopInput())
	assert.True(t, cfg.ListFilesAtExit)
	assert.Equal(t, viewport.ScalingShrink, cfg.GetScalingMode())
	assert.Equal(t, config.UpscalingNearest, cfg.GetUpscalingMethod())
	assert.Equal(t, "ff0000", cfg.Background)
	assert.InDelta(t, 2.5, cfg.GetSlideshowDuration(), 1e-9)
	assert.Equal(t, config.ProtocolBlocks, cfg.GetImageProtocol())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"/tmp/c", "/tmp/a", "/tmp/b"}, cfg.Watch)
}

func TestApply_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"scaling", []string{"-s", "huge"}},
		{"upscaling", []string{"-u", "cubic"}},
		{"background", []string{"-b", "notacolour"}},
		{"slideshow", []string{"-t", "-1"}},
		{"protocol", []string{"--protocol", "iterm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := parseFlags(t, tt.args...)
			if err := f.apply(cmd, &config.Config{}); err == nil {
				t.Errorf("apply(%v) error = nil, want error", tt.args)
			}
		})
	}
}

func newTestNavigator(t *testing.T) (*navigator.Navigator, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, nil, 0o600))
		paths = append(paths, p)
	}
	nav := navigator.New(nil)
	require.NoError(t, nav.Add(dir, false))
	return nav, paths
}

func TestSelectStart(t *testing.T) {
	nav, paths := newTestNavigator(t)

	require.NoError(t, selectStart(nav, "2"))
	if got := nav.Selection(); got != paths[1] {
		t.Errorf("Selection() = %q, want %q", got, paths[1])
	}

	require.NoError(t, selectStart(nav, paths[2]))
	if got := nav.Selection(); got != paths[2] {
		t.Errorf("Selection() = %q, want %q", got, paths[2])
	}

	dirty := filepath.Dir(paths[0]) + "/./a.png"
	require.NoError(t, selectStart(nav, dirty))
	if got := nav.Selection(); got != paths[0] {
		t.Errorf("Selection() = %q, want %q", got, paths[0])
	}
}

func TestSelectStart_Errors(t *testing.T) {
	nav, _ := newTestNavigator(t)

	for _, start := range []string{"0", "4", "missing.png"} {
		if err := selectStart(nav, start); err == nil {
			t.Errorf("selectStart(%q) error = nil, want error", start)
		}
	}
	if err := selectStart(navigator.New(nil), "1"); err == nil {
		t.Error("selectStart() on empty list error = nil, want error")
	}
}

func TestHelpListsBackends(t *testing.T) {
	cmd := newRootCmd(newRegistry())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	help := out.String()
	require.Contains(t, help, "Backends:")
	stdimage := strings.Index(help, "stdimage")
	vector := strings.Index(help, "vector")
	artwork := strings.Index(help, "artwork")
	if stdimage < 0 || vector < 0 || artwork < 0 {
		t.Fatalf("help is missing a backend:\n%s", help)
	}
	if stdimage >= vector || vector >= artwork {
		t.Errorf("backends not listed in trial order:\n%s", help)
	}
}

func TestResumePath(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "kept.png")
	older := filepath.Join(dir, "older.png")
	for _, p := range []string{kept, older} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	gone := filepath.Join(dir, "gone.png")

	tests := []struct {
		name    string
		last    *state.Selection
		history []state.HistoryEntry
		want    string
	}{
		{"first run", nil, nil, ""},
		{"last selection", &state.Selection{Path: kept, Directory: dir}, []state.HistoryEntry{{Path: older}}, kept},
		{"last selection gone", &state.Selection{Path: gone, Directory: dir}, []state.HistoryEntry{{Path: gone}, {Path: older}}, older},
		{"nothing left", &state.Selection{Path: gone, Directory: dir}, []state.HistoryEntry{{Path: gone}, {Path: dir}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := state.NewMock()
			store.SetLastSelection(tt.last)
			store.SetHistory(tt.history)
			if got := resumePath(store); got != tt.want {
				t.Errorf("resumePath() = %q, want %q", got, tt.want)
			}
		})
	}
}
