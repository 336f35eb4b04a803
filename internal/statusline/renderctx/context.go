// Package renderctx assembles the read-only view segments render from. It
// combines the host session snapshot with cached git, quota and update
// state; reading the cache may start a background refresh but never waits.
package renderctx

import (
	"os"
	"sync"
	"time"

	"github.com/young1lin/powerline-footer/internal/gitx"
	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/quota"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

// Context is built once per render and not modified afterwards.
type Context struct {
	Cwd       string
	SessionID string
	Model     string
	ModelID   string
	Thinking  string

	// InRepo is false outside a git repository; Branch is then "".
	InRepo bool
	Branch string
	Dirty  gitx.DirtyCounts

	Usage         host.Usage
	ContextWindow int64
	// ContextPercent is ContextTokens / ContextWindow * 100.
	ContextPercent float64

	Quota   *quota.Snapshot
	Update  string
	Vibe    string
	Elapsed time.Duration
	Now     time.Time
	Host    string

	Theme *theme.Theme
}

// Builder produces a Context per render.
type Builder struct {
	sources  *Sources
	now      func() time.Time
	hostname string
	vibe     func() string

	mu    sync.RWMutex
	theme *theme.Theme
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the clock.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithHostname overrides the host name.
func WithHostname(name string) BuilderOption {
	return func(b *Builder) { b.hostname = name }
}

// WithVibe sets the loading-message source.
func WithVibe(fn func() string) BuilderOption {
	return func(b *Builder) { b.vibe = fn }
}

// NewBuilder creates a builder over sources. A nil sources value renders
// without git, quota or update data.
func NewBuilder(sources *Sources, th *theme.Theme, opts ...BuilderOption) *Builder {
	if sources == nil {
		sources = NewSources(SourcesConfig{})
	}
	if th == nil {
		th = theme.Default()
	}
	b := &Builder{sources: sources, theme: th, now: time.Now}
	if name, err := os.Hostname(); err == nil {
		b.hostname = name
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sources returns the cache the builder reads from.
func (b *Builder) Sources() *Sources {
	return b.sources
}

// SetTheme swaps the theme used by subsequent builds.
func (b *Builder) SetTheme(th *theme.Theme) {
	b.mu.Lock()
	b.theme = th
	b.mu.Unlock()
}

// Theme returns the current theme.
func (b *Builder) Theme() *theme.Theme {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.theme
}

// Build assembles a fresh context.
func (b *Builder) Build(s host.Session) *Context {
	now := b.now()
	branch := b.sources.Branch()

	ctx := &Context{
		Cwd:           s.Cwd,
		SessionID:     s.ID,
		Model:         s.ModelName,
		ModelID:       s.ModelID,
		Thinking:      s.Thinking,
		InRepo:        branch != "",
		Branch:        branch,
		Usage:         s.Usage,
		ContextWindow: s.ContextWindow,
		Quota:         b.sources.Quota(),
		Update:        b.sources.Update(),
		Now:           now,
		Host:          b.hostname,
		Theme:         b.Theme(),
	}
	if ctx.InRepo {
		ctx.Dirty = b.sources.Dirty()
	}
	if ctx.Cwd == "" {
		ctx.Cwd = b.sources.Dir()
	}
	if s.ContextWindow > 0 {
		ctx.ContextPercent = float64(s.Usage.ContextTokens) / float64(s.ContextWindow) * 100
	}
	if !s.StartedAt.IsZero() && now.After(s.StartedAt) {
		ctx.Elapsed = now.Sub(s.StartedAt)
	}
	if b.vibe != nil {
		ctx.Vibe = b.vibe()
	}
	return ctx
}
