// Package app is the root bubbletea model of the terminal viewer.
package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/keymap"
	"github.com/llehouerou/glimpse/internal/ui/help"
	"github.com/llehouerou/glimpse/internal/ui/termimg"
	"github.com/llehouerou/glimpse/internal/viewer"
)

// statusHeight is the number of rows below the image area.
const statusHeight = 1

// Options configures the model.
type Options struct {
	Protocol   termimg.Protocol
	Background termimg.Background
	// Upscaling is "linear" or "nearest_neighbour".
	Upscaling string
	Resolver  *keymap.Resolver
	// Post forwards messages to the viewer.
	Post func(bridge.Message)
	// Start is called once, when the first window size is known.
	Start func()
	Log   logrus.FieldLogger
}

// DoneMsg tells the program that the viewer has stopped.
type DoneMsg struct {
	Err error
}

// framePreparedMsg is sent when async frame preparation completes.
type framePreparedMsg struct {
	seq      uint64
	id       uint32
	transmit string
	err      error
}

// Model is the root application model.
type Model struct {
	opts     Options
	renderer *Renderer
	interp   resize.InterpolationFunction

	Width   int
	Height  int
	started bool

	scene    viewer.Scene
	title    string
	seq      uint64
	nextID   uint32
	imageID  uint32
	transmit string

	prompt      textinput.Model
	prompting   bool
	help        help.Model
	helping     bool
	pendingKeys string
	ErrorMsg    string
	quitting    bool
}

// New creates the model. The renderer receives the image area size.
func New(opts Options, renderer *Renderer) Model {
	p := textinput.New()
	p.Prompt = ":"
	p.Placeholder = "command"
	return Model{
		opts:     opts,
		renderer: renderer,
		interp:   termimg.Interpolation(opts.Upscaling),
		prompt:   p,
		help:     help.New(opts.Resolver),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// imageArea returns the image area size in cells.
func (m Model) imageArea() (cols, rows int) {
	return m.Width, max(m.Height-statusHeight, 0)
}
