package tui

import "github.com/young1lin/powerline-footer/internal/host"

// TickMsg redraws the preview once a second so the clock and elapsed
// segments move.
type TickMsg struct{}

// RenderMsg is delivered when the footer asked for a repaint.
type RenderMsg struct{}

// SessionMsg replaces the previewed session snapshot.
type SessionMsg struct {
	Session host.Session
}
