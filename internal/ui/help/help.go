// Package help renders a scrollable list of the active key bindings.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/glimpse/internal/keymap"
	"github.com/llehouerou/glimpse/internal/ui/render"
)

// contextOrder defines the display order of binding contexts.
var contextOrder = []string{"global", "navigation", "view", "playback"}

var contextLabels = map[string]string{
	"global":     "Global",
	"navigation": "Navigation",
	"view":       "View",
	"playback":   "Playback",
	"custom":     "Custom",
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	descStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// chrome is the number of lines around the list: title, blank, blank, footer.
const chrome = 4

type entry struct {
	context string
	keys    string
	desc    string
}

// Model holds the help screen state.
type Model struct {
	entries []entry
	width   int
	height  int
	offset  int
}

// New lists the keys currently bound in resolver. Default bindings keep
// their description; commands bound only through config are listed under
// "Custom" by their command line.
func New(resolver *keymap.Resolver) Model {
	var entries []entry
	known := make(map[string]bool)
	for _, ctx := range contextOrder {
		for _, b := range keymap.ByContext(ctx) {
			known[b.Command] = true
			keys := resolver.KeysFor(b.Command)
			if len(keys) == 0 {
				continue
			}
			entries = append(entries, entry{ctx, formatKeys(keys), b.Description})
		}
	}
	for _, cmd := range resolver.Commands() {
		if known[cmd] {
			continue
		}
		entries = append(entries, entry{"custom", formatKeys(resolver.KeysFor(cmd)), cmd})
	}
	return Model{entries: entries}
}

func formatKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, ", ")
}

// SetSize sets the area the help screen fills.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.offset = min(m.offset, m.maxScroll())
}

// Update handles a key press. It returns false when the screen should close.
func (m Model) Update(key string) (Model, bool) {
	switch key {
	case "?", "esc", "q":
		return m, false
	case "j", "down":
		if m.offset < m.maxScroll() {
			m.offset++
		}
	case "k", "up":
		if m.offset > 0 {
			m.offset--
		}
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxScroll()
	}
	return m, true
}

// View renders exactly height lines of width cells.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := m.lines()
	end := min(m.offset+m.visibleHeight(), len(lines))
	start := min(m.offset, end)

	out := make([]string, 0, m.height)
	out = append(out, titleStyle.Render(render.Fit("Help", m.width)), render.Fit("", m.width))
	out = append(out, lines[start:end]...)
	for len(out) < m.height-1 {
		out = append(out, render.Fit("", m.width))
	}
	out = append(out, footerStyle.Render(render.Fit(m.footer(), m.width)))
	return strings.Join(out[:m.height], "\n")
}

// lines renders every entry, padded to the screen width.
func (m Model) lines() []string {
	keyWidth := 0
	for _, e := range m.entries {
		keyWidth = max(keyWidth, render.Width(e.keys))
	}
	keyWidth = min(keyWidth, m.width/2)
	descWidth := max(m.width-keyWidth-2, 0)

	var lines []string
	current := ""
	for _, e := range m.entries {
		if e.context != current {
			if current != "" {
				lines = append(lines, render.Fit("", m.width))
			}
			lines = append(lines,
				headerStyle.Render(render.Fit(contextLabels[e.context], m.width)),
				separatorStyle.Render(render.Fit(strings.Repeat("─", keyWidth+15), m.width)),
			)
			current = e.context
		}
		line := keyStyle.Render(render.Fit(e.keys, keyWidth))
		if m.width > keyWidth {
			line += render.Fit("  ", min(2, m.width-keyWidth)) + descStyle.Render(render.Fit(e.desc, descWidth))
		}
		lines = append(lines, line)
	}
	return lines
}

func (m Model) footer() string {
	if m.maxScroll() == 0 {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	return max(m.height-chrome, 1)
}

func (m Model) maxScroll() int {
	return max(m.totalLines()-m.visibleHeight(), 0)
}

func (m Model) totalLines() int {
	if len(m.entries) == 0 {
		return 0
	}
	n := len(m.entries)
	current := ""
	groups := 0
	for _, e := range m.entries {
		if e.context != current {
			groups++
			current = e.context
		}
	}
	// header and separator per group, blank line between groups
	return n + 2*groups + groups - 1
}
