// Package tui is a terminal preview host for the powerline footer. It plays
// the role of the agent: it owns the screen, hands surfaces to the footer
// and forwards simulated lifecycle events.
package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/statusline/footer"
	"github.com/young1lin/powerline-footer/internal/statusline/preset"
)

const defaultWidth = 100

// Styles contains the Lipgloss styles for the preview chrome.
type Styles struct {
	Border  lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default preview styles.
func DefaultStyles() Styles {
	grey := lipgloss.Color("239")
	return Styles{
		Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(grey),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// SessionStore holds the snapshot handed to the footer. It is shared with
// the footer's session callback, which may run off the bubbletea goroutine.
type SessionStore struct {
	mu sync.Mutex
	s  host.Session
}

// Get returns the current snapshot.
func (st *SessionStore) Get() host.Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}

// Set replaces the snapshot.
func (st *SessionStore) Set(s host.Session) {
	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
}

// Model is the preview host state.
type Model struct {
	ui       *Surfaces
	footer   *footer.Footer
	events   *host.Dispatcher
	sessions *SessionStore

	width    int
	agentOn  bool
	quitting bool
	styles   Styles
}

// NewModel creates the preview. ui must be the UI the footer was built with.
func NewModel(ui *Surfaces, f *footer.Footer, events *host.Dispatcher, sessions *SessionStore) Model {
	if sessions == nil {
		sessions = &SessionStore{}
	}
	return Model{
		ui:       ui,
		footer:   f,
		events:   events,
		sessions: sessions,
		width:    defaultWidth,
		styles:   DefaultStyles(),
	}
}

// Init starts the clock and the repaint listener, and announces the session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForRender(m.ui),
		func() tea.Msg {
			m.events.Dispatch(host.Event{Kind: host.SessionStart})
			return RenderMsg{}
		},
	)
}

// tickCmd returns a command that sends TickMsg messages
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForRender blocks until the footer requests a repaint.
func waitForRender(ui *Surfaces) tea.Cmd {
	return func() tea.Msg {
		<-ui.renders
		return RenderMsg{}
	}
}

// nextPreset returns the preset after current in display order.
func nextPreset(current string) string {
	names := preset.Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
