// Package host defines the contract between the footer and the agent runtime
// that loads it: session data, lifecycle events, render surfaces and notices.
package host

import (
	"time"
)

// Usage holds session-accumulated token counters.
type Usage struct {
	InputTokens      int64
	OutputTokens     int64
	CacheReadTokens  int64
	CacheWriteTokens int64
	CostUSD          float64
	// ContextTokens is the prompt size of the latest turn.
	ContextTokens int64
}

// Total returns input + output + cache tokens.
func (u Usage) Total() int64 {
	return u.InputTokens + u.OutputTokens + u.CacheReadTokens + u.CacheWriteTokens
}

// Add accumulates another usage record. ContextTokens is replaced, not summed.
func (u *Usage) Add(o Usage) {
	u.InputTokens += o.InputTokens
	u.OutputTokens += o.OutputTokens
	u.CacheReadTokens += o.CacheReadTokens
	u.CacheWriteTokens += o.CacheWriteTokens
	u.CostUSD += o.CostUSD
	if o.ContextTokens > 0 {
		u.ContextTokens = o.ContextTokens
	}
}

// Session is the read-only snapshot the host hands over on every render.
type Session struct {
	ID            string
	Cwd           string
	ModelID       string
	ModelName     string
	ContextWindow int64
	Thinking      string
	StartedAt     time.Time
	Usage         Usage
}

// Severity tags an advisory notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notice is an advisory message shown by the host.
type Notice struct {
	Severity Severity
	Message  string
}

// RenderFunc returns display lines for the given terminal width. It must not
// block.
type RenderFunc func(width int) []string

// UI is the set of surfaces the footer can take over. Passing a nil
// RenderFunc restores the host default (clears the surface).
type UI interface {
	SetEditor(fn RenderFunc)
	SetFooter(fn RenderFunc)
	SetWidget(name string, fn RenderFunc)
	Notify(n Notice)
	RequestRender()
}
