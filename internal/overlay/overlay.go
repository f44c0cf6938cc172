// Package overlay expands the title and overlay format strings against an
// explicit set of named variables.
package overlay

import (
	"os"
	"strings"
)

// Variable names available to format strings.
const (
	CurrentFile       = "current_file"
	CurrentIndex      = "current_index"
	FileCount         = "file_count"
	FileSize          = "file_size"
	Width             = "width"
	Height            = "height"
	Scale             = "scale"
	ScalingMode       = "scaling_mode"
	Loading           = "loading"
	Playing           = "playing"
	SlideshowDuration = "slideshow_duration"
	SlideshowElapsed  = "slideshow_elapsed"
)

const (
	// DefaultOverlayText is shown in the overlay bar.
	DefaultOverlayText = "[${current_index}/${file_count}] ${current_file}"
	// DefaultTitleText is used for the terminal title.
	DefaultTitleText = "glimpse - [${current_index}/${file_count}] [${width}x${height}] [${scale}%] ${current_file} [${scaling_mode}]"
)

// Vars is a snapshot of the viewer state exposed to format strings.
type Vars map[string]string

// Get returns the value of name, or "" when unset.
func (v Vars) Get(name string) string {
	return v[name]
}

// Expand replaces $name and ${name} in format with values from vars.
// Unknown names expand to "". Runs of whitespace are collapsed.
func Expand(format string, vars Vars) string {
	out := os.Expand(format, vars.Get)
	return strings.Join(strings.Fields(out), " ")
}
