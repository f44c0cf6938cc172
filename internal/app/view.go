package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/glimpse/internal/ui/render"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		if m.imageID != 0 {
			return m.opts.Protocol.Delete(m.imageID)
		}
		return ""
	}
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	cols, rows := m.imageArea()
	var sb strings.Builder
	sb.WriteString(m.transmit)
	if m.helping {
		if m.imageID != 0 {
			sb.WriteString(m.opts.Protocol.Hide(m.imageID))
		}
		sb.WriteString(m.help.View())
	} else {
		// Blank cells keep the layout free of image escapes.
		sb.WriteString(render.Blank(cols, rows))
	}
	if rows > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(m.statusLine())
	if m.imageID != 0 && rows > 0 && !m.helping {
		sb.WriteString(m.opts.Protocol.Place(m.imageID, 1, 1, cols, rows))
	}
	return sb.String()
}

func (m Model) statusLine() string {
	width := m.Width
	if m.prompting {
		return barStyle.Width(width).Render(ansi.Truncate(m.prompt.View(), width, ""))
	}
	if m.ErrorMsg != "" {
		return errorStyle.Render(render.Fit(render.Sanitize(m.ErrorMsg), width))
	}

	var right string
	switch {
	case m.pendingKeys != "":
		right = m.pendingKeys
	case m.scene.Empty:
		right = "no images"
	case m.scene.Loading:
		right = "loading…"
	case !m.helping:
		right = "? help"
	}
	right = render.Truncate(right, width)

	left := render.Fit(render.Sanitize(m.scene.Overlay), width-render.Width(right))
	return barStyle.Render(left) + hintStyle.Render(right)
}
