package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/young1lin/powerline-footer/internal/host"
)

const help = "t toggle · p next preset · a agent start/end · e edit · b bash · +/- width · q quit"

// View renders the preview screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderEditor())
	if widgets := m.ui.Widgets(m.width); len(widgets) > 0 {
		sections = append(sections, strings.Join(widgets, "\n"))
	}
	if lines := m.ui.Footer(m.width); len(lines) > 0 {
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if n, ok := m.ui.LastNotice(); ok {
		sections = append(sections, m.renderNotice(n))
	}
	sections = append(sections, m.styles.Muted.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderHeader() string {
	state := "disabled"
	if m.footer.Enabled() {
		state = "preset " + m.footer.Preset()
	}
	info := fmt.Sprintf("%s · width %d", state, m.width)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render("powerline preview"), "  ", m.styles.Muted.Render(info))
}

// renderEditor draws the editor border. An installed editor surface supplies
// the top rule; otherwise a plain prompt is shown.
func (m Model) renderEditor() string {
	inner := max(m.width-2, 1)
	prompt := m.styles.Prompt.Render("> ") + m.styles.Muted.Render("type a message")
	box := m.styles.Border.Width(inner).Render(prompt)

	lines, ok := m.ui.Editor(m.width)
	if !ok || len(lines) == 0 {
		return box
	}
	return strings.Join(lines, "\n") + "\n" + box
}

func (m Model) renderNotice(n host.Notice) string {
	style := m.styles.Info
	switch n.Severity {
	case host.SeverityWarning:
		style = m.styles.Warning
	case host.SeverityError:
		style = m.styles.Error
	}
	return style.Render(fmt.Sprintf("[%s] %s", n.Severity, n.Message))
}
