package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/ui/termimg"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SceneMsg:
		return m.handleScene(msg)

	case framePreparedMsg:
		return m.handleFramePrepared(msg)

	case DoneMsg:
		m.quitting = true
		if msg.Err != nil {
			m.opts.Log.WithError(msg.Err).Warn("viewer stopped")
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.prompt.Width = max(msg.Width-2, 0)

	cols, rows := m.imageArea()
	m.help.SetSize(cols, rows)
	w, h := termimg.PixelSize(m.opts.Protocol, cols, rows)
	m.renderer.setSize(w, h)

	if !m.started {
		m.started = true
		if m.opts.Start != nil {
			m.opts.Start()
		}
		return m, nil
	}
	m.opts.Post(bridge.Resize{Width: w, Height: h})
	return m, nil
}

func (m Model) handleScene(msg SceneMsg) (tea.Model, tea.Cmd) {
	m.scene = msg.Scene
	m.seq++
	m.nextID++

	prepare := m.prepareFrame(m.seq, m.nextID)
	if msg.Scene.Title == m.title {
		return m, prepare
	}
	m.title = msg.Scene.Title
	return m, tea.Batch(prepare, tea.SetWindowTitle(m.title))
}

// prepareFrame composes and encodes the scene off the update loop.
func (m Model) prepareFrame(seq uint64, id uint32) tea.Cmd {
	scene := m.scene
	proto := m.opts.Protocol
	bg := m.opts.Background
	interp := m.interp
	w, h := m.renderer.Size()

	return func() tea.Msg {
		canvas := termimg.Compose(scene.Image, scene.Scale, scene.X, scene.Y, w, h, bg, interp)
		transmit, err := proto.Prepare(canvas, id)
		return framePreparedMsg{seq: seq, id: id, transmit: transmit, err: err}
	}
}

func (m Model) handleFramePrepared(msg framePreparedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		// A newer scene is being prepared.
		m.opts.Protocol.Delete(msg.id)
		return m, nil
	}
	if msg.err != nil {
		m.opts.Log.WithError(msg.err).Warn("failed to prepare frame")
		return m, nil
	}

	var del string
	if m.imageID != 0 {
		del = m.opts.Protocol.Delete(m.imageID)
	}
	m.imageID = msg.id
	m.transmit = del + msg.transmit
	return m, nil
}
