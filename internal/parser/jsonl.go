// Package parser reads the host's JSONL session logs: session headers, chat
// messages and per-turn usage.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry types.
const (
	TypeSession   = "session"
	TypeUser      = "user"
	TypeAssistant = "assistant"
)

// Entry is one line of a session log.
type Entry struct {
	Type      string   `json:"type"`
	ID        string   `json:"id,omitempty"`
	Cwd       string   `json:"cwd,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Message   *Message `json:"message,omitempty"`
}

// Message is a chat message. Content is either a plain string or a list of
// content blocks.
type Message struct {
	Role     string          `json:"role,omitempty"`
	Model    string          `json:"model,omitempty"`
	Thinking string          `json:"thinking_level,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
	Usage    *TokenUsage     `json:"usage,omitempty"`
}

// ContentBlock is one element of a structured message body.
type ContentBlock struct {
	Type  string         `json:"type"`
	Text  string         `json:"text,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

// TokenUsage is the usage block reported for an assistant turn.
type TokenUsage struct {
	InputTokens              int64    `json:"input_tokens"`
	OutputTokens             int64    `json:"output_tokens"`
	CacheCreationInputTokens int64    `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64    `json:"cache_read_input_tokens"`
	CostUSD                  *float64 `json:"cost_usd,omitempty"`
}

// PromptTokens is the size of the prompt sent for the turn.
func (u TokenUsage) PromptTokens() int64 {
	return u.InputTokens + u.CacheReadInputTokens + u.CacheCreationInputTokens
}

// ParseLine decodes one log line. Blank lines give (nil, nil).
func ParseLine(line []byte) (*Entry, error) {
	if len(strings.TrimSpace(string(line))) == 0 {
		return nil, nil
	}
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return nil, fmt.Errorf("parse entry: %w", err)
	}
	return &e, nil
}

// Blocks returns the message content as blocks. A string body becomes a
// single text block.
func (m *Message) Blocks() []ContentBlock {
	if m == nil || len(m.Content) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(m.Content, &s); err == nil {
		if s == "" {
			return nil
		}
		return []ContentBlock{{Type: "text", Text: s}}
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(m.Content, &blocks); err != nil {
		return nil
	}
	return blocks
}

// Text joins the text blocks of the message.
func (m *Message) Text() string {
	var parts []string
	for _, b := range m.Blocks() {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ToolNames lists tool_use block names in order.
func (m *Message) ToolNames() []string {
	var names []string
	for _, b := range m.Blocks() {
		if b.Type == "tool_use" && b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return names
}
