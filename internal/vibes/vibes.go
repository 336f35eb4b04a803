// Package vibes produces the loading message shown while the agent works.
//
// Each Start hands out a new generation handle. A message only lands when the
// handle it was produced under is still the active one, so a slow generator
// from a previous run can never overwrite the current message.
package vibes

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often a new message is requested while running.
const DefaultInterval = 4 * time.Second

// Generator produces one loading message.
type Generator interface {
	Next(ctx context.Context) (string, error)
}

// StaticGenerator cycles through a fixed phrase list.
type StaticGenerator struct {
	Phrases []string
	n       atomic.Uint64
}

var defaultPhrases = []string{
	"Thinking",
	"Reticulating splines",
	"Consulting the diff",
	"Reading the room",
	"Untangling imports",
	"Counting tokens",
	"Asking the rubber duck",
}

// Next returns the next phrase.
func (g *StaticGenerator) Next(ctx context.Context) (string, error) {
	phrases := g.Phrases
	if len(phrases) == 0 {
		phrases = defaultPhrases
	}
	i := g.n.Add(1) - 1
	return phrases[i%uint64(len(phrases))] + "...", nil
}

// Ticker owns the current message.
type Ticker struct {
	gen      Generator
	interval time.Duration
	onChange func()

	mu      sync.Mutex
	handle  uint64
	current string
	cancel  context.CancelFunc
}

// NewTicker creates an idle ticker. onChange is called after a message lands
// or is cleared; it may be nil.
func NewTicker(gen Generator, interval time.Duration, onChange func()) *Ticker {
	if gen == nil {
		gen = &StaticGenerator{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{gen: gen, interval: interval, onChange: onChange}
}

// Start begins a new run and supersedes any previous one.
func (t *Ticker) Start() {
	t.mu.Lock()
	t.handle++
	h := t.handle
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.mu.Unlock()

	go t.run(ctx, h)
}

// Stop ends the current run and clears the message.
func (t *Ticker) Stop() {
	t.mu.Lock()
	t.handle++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	changed := t.current != ""
	t.current = ""
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.onChange()
	}
}

// Current returns the active message, or "".
func (t *Ticker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Handle returns the active generation handle.
func (t *Ticker) Handle() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handle
}

func (t *Ticker) run(ctx context.Context, h uint64) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if msg, err := t.gen.Next(ctx); err == nil {
			t.commit(h, msg)
		}
		timer.Reset(t.interval)
	}
}

// commit stores msg when h is still the active handle.
func (t *Ticker) commit(h uint64, msg string) bool {
	t.mu.Lock()
	if h != t.handle {
		t.mu.Unlock()
		return false
	}
	t.current = msg
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange()
	}
	return true
}
