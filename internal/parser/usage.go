package parser

import (
	"github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/host"
)

// UsageOf converts a turn's usage block. When the log carries no cost the
// model's list price is used.
func UsageOf(model string, u TokenUsage) host.Usage {
	var cost float64
	if u.CostUSD != nil {
		cost = *u.CostUSD
	} else {
		cost = config.Cost(model, int(u.InputTokens), int(u.OutputTokens),
			int(u.CacheReadInputTokens), int(u.CacheCreationInputTokens))
	}
	return host.Usage{
		InputTokens:      u.InputTokens,
		OutputTokens:     u.OutputTokens,
		CacheReadTokens:  u.CacheReadInputTokens,
		CacheWriteTokens: u.CacheCreationInputTokens,
		CostUSD:          cost,
		ContextTokens:    u.PromptTokens(),
	}
}

// Accumulator folds entries into a session snapshot.
type Accumulator struct {
	session  host.Session
	messages int
}

// Add folds one entry.
func (a *Accumulator) Add(e *Entry) {
	if e == nil {
		return
	}
	switch e.Type {
	case TypeSession:
		if e.ID != "" {
			a.session.ID = e.ID
		}
		if e.Cwd != "" {
			a.session.Cwd = e.Cwd
		}
		if t, ok := parseTime(e.Timestamp); ok && a.session.StartedAt.IsZero() {
			a.session.StartedAt = t
		}
	case TypeUser, TypeAssistant:
		a.messages++
		if t, ok := parseTime(e.Timestamp); ok && a.session.StartedAt.IsZero() {
			a.session.StartedAt = t
		}
		m := e.Message
		if e.Type != TypeAssistant || m == nil {
			return
		}
		if m.Model != "" {
			a.session.ModelID = m.Model
		}
		if m.Thinking != "" {
			a.session.Thinking = m.Thinking
		}
		if m.Usage != nil {
			a.session.Usage.Add(UsageOf(a.session.ModelID, *m.Usage))
		}
	}
}

// Messages returns the number of chat messages seen.
func (a *Accumulator) Messages() int { return a.messages }

// Session returns the snapshot so far with model name and context window
// filled from the model table.
func (a *Accumulator) Session() host.Session {
	s := a.session
	if s.ModelID != "" {
		s.ModelName = config.ModelName(s.ModelID)
		s.ContextWindow = int64(config.ContextWindow(s.ModelID))
	}
	return s
}
