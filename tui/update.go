package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/young1lin/powerline-footer/internal/host"
)

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case RenderMsg:
		return m, waitForRender(m.ui)

	case SessionMsg:
		m.sessions.Set(msg.Session)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg maps keys to footer commands and simulated host events.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.footer.Disable()
		return m, tea.Quit
	case "t":
		m.footer.Command("")
	case "p":
		if !m.footer.Enabled() {
			m.footer.Command("")
		} else {
			m.footer.Command(nextPreset(m.footer.Preset()))
		}
	case "a":
		if m.agentOn {
			m.events.Dispatch(host.Event{Kind: host.AgentEnd})
		} else {
			m.events.Dispatch(host.Event{Kind: host.AgentStart})
		}
		m.agentOn = !m.agentOn
	case "e":
		m.events.Dispatch(host.Event{Kind: host.ToolCall, ToolName: "edit"})
	case "b":
		m.events.Dispatch(host.Event{Kind: host.UserBash, Command: "git status"})
	case "+":
		m.width++
	case "-":
		if m.width > 1 {
			m.width--
		}
	}
	return m, nil
}
