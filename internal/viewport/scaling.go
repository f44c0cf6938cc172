package viewport

import "fmt"

// ScalingMode decides how a new image is fitted to the window.
type ScalingMode int

const (
	// ScalingNone shows images at their native size.
	ScalingNone ScalingMode = iota
	// ScalingShrink fits images larger than the window, leaves others as is.
	ScalingShrink
	// ScalingFull fits every image to the window.
	ScalingFull

	scalingModeCount
)

// String returns the config name of the mode.
func (m ScalingMode) String() string {
	switch m {
	case ScalingNone:
		return "none"
	case ScalingShrink:
		return "shrink"
	case ScalingFull:
		return "full"
	default:
		return "unknown"
	}
}

// Next cycles to the following mode.
func (m ScalingMode) Next() ScalingMode {
	return (m + 1) % scalingModeCount
}

// ParseScalingMode parses "none", "shrink" or "full".
func ParseScalingMode(s string) (ScalingMode, error) {
	switch s {
	case "none":
		return ScalingNone, nil
	case "shrink":
		return ScalingShrink, nil
	case "full":
		return ScalingFull, nil
	default:
		return ScalingFull, fmt.Errorf("unknown scaling mode %q", s)
	}
}
