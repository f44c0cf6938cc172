package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/keymap"
)

// keyHandler attempts to handle a key; handled is false to try the next one.
type keyHandler func(key string) (handled bool, cmd tea.Cmd)

// chain runs handlers in order until one handles the key.
func chain(key string, handlers ...keyHandler) tea.Cmd {
	for _, h := range handlers {
		if handled, cmd := h(key); handled {
			return cmd
		}
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}
	if m.helping {
		m.help, m.helping = m.help.Update(msg.String())
		return m, nil
	}

	m.ErrorMsg = ""
	cmd := chain(msg.String(),
		m.handleHelpOpen,
		m.handlePromptOpen,
		m.handleSequence,
		m.handleBinding,
	)
	return m, cmd
}

func (m *Model) handleHelpOpen(key string) (bool, tea.Cmd) {
	if key != "?" || m.pendingKeys != "" {
		return false, nil
	}
	m.helping = true
	return true, nil
}

func (m *Model) handlePromptOpen(key string) (bool, tea.Cmd) {
	if key != ":" || m.pendingKeys != "" {
		return false, nil
	}
	m.prompting = true
	m.prompt.Reset()
	return true, m.prompt.Focus()
}

// handleSequence collects keys while they form the prefix of a bound
// sequence such as "g g".
func (m *Model) handleSequence(key string) (bool, tea.Cmd) {
	seq := key
	if m.pendingKeys != "" {
		seq = m.pendingKeys + " " + key
	}
	if m.opts.Resolver.IsPrefix(seq) {
		m.pendingKeys = seq
		return true, nil
	}
	if m.pendingKeys != "" {
		m.pendingKeys = ""
		m.run(m.opts.Resolver.Resolve(seq), seq)
		return true, nil
	}
	return false, nil
}

func (m *Model) handleBinding(key string) (bool, tea.Cmd) {
	line := m.opts.Resolver.Resolve(key)
	if line == "" {
		return false, nil
	}
	m.run(line, key)
	return true, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.prompting = false
		m.prompt.Blur()
		m.run(line, line)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// run parses a command line and forwards it to the viewer.
func (m *Model) run(line, context string) {
	if line == "" {
		return
	}
	cmds, err := keymap.Parse(line)
	if err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpCommand, context, err)
		m.opts.Log.WithError(err).WithField("command", line).Debug("rejected command")
		return
	}
	for _, c := range cmds {
		m.opts.Post(c)
	}
}
