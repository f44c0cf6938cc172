// Package keymap defines key bindings and command parsing for the viewer.
package keymap

// Binding binds keys to a command line such as "zoom 1" or "next; overlay".
// A key written as "g g" is a sequence of two key presses.
type Binding struct {
	Keys        []string
	Command     string
	Description string
	Context     string // "global", "navigation", "view", "playback"
}

// Bindings contains the default key bindings.
var Bindings = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, "quit", "Quit", "global"},
	{[]string{"d"}, "overlay", "Toggle overlay", "global"},
	{[]string{"x"}, "close", "Close current image", "global"},

	// Navigation
	{[]string{"right", "l", "pgdown"}, "next", "Next image", "navigation"},
	{[]string{"left", "h", "pgup"}, "prev", "Previous image", "navigation"},
	{[]string{"g g", "home"}, "goto 1", "First image", "navigation"},
	{[]string{"G", "end"}, "goto -1", "Last image", "navigation"},

	// View
	{[]string{"+", "=", "i"}, "zoom 1", "Zoom in", "view"},
	{[]string{"-", "o"}, "zoom -1", "Zoom out", "view"},
	{[]string{"a"}, "zoom actual", "Actual size", "view"},
	{[]string{"r"}, "reset", "Fit to window", "view"},
	{[]string{"c"}, "center", "Center image", "view"},
	{[]string{"t"}, "top", "Align to top", "view"},
	{[]string{"b"}, "bottom", "Align to bottom", "view"},
	{[]string{"s"}, "scaling next", "Cycle scaling mode", "view"},
	{[]string{"j", "down"}, "pan 0 -50", "Pan down", "view"},
	{[]string{"k", "up"}, "pan 0 50", "Pan up", "view"},
	{[]string{"shift+left", "H"}, "pan 50 0", "Pan left", "view"},
	{[]string{"shift+right", "L"}, "pan -50 0", "Pan right", "view"},

	// Playback
	{[]string{" "}, "toggle_playing", "Play/pause animation", "playback"},
	{[]string{"."}, "next_frame", "Next frame", "playback"},
	{[]string{"T"}, "slideshow +1", "Slideshow slower", "playback"},
	{[]string{"ctrl+t"}, "slideshow -1", "Slideshow faster", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
