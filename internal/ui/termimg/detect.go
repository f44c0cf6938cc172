package termimg

import (
	"os"
	"strings"
)

// Detect returns the protocol named by name ("kitty", "sixel" or
// "blocks"), or the best one for the current terminal for "auto" and
// anything else. The result is never nil.
func Detect(name string) Protocol {
	switch name {
	case "kitty":
		return NewKitty()
	case "sixel":
		return NewSixel()
	case "blocks":
		return NewBlocks()
	}

	if IsKittySupported() {
		return NewKitty()
	}
	if IsSixelSupported() {
		return NewSixel()
	}
	return NewBlocks()
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty protocol,
	// while parent terminal variables can leak into it.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	// KONSOLE_VERSION is like "220401" for 22.04.01
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")

	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}
	if term == "foot" || term == "foot-extra" || term == "mlterm" {
		return true
	}
	// xterm only has sixel when built with it; TERM=xterm is a hint.
	return term == "xterm" || strings.HasPrefix(term, "xterm-")
}
