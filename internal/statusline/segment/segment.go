// Package segment holds the catalogue of status-line fields. Each segment is a
// pure function of the render context: no I/O, no shared state. Segments
// decide their own visibility.
package segment

import (
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

// ID names a segment.
type ID string

const (
	Model        ID = "model"
	Thinking     ID = "thinking"
	Path         ID = "path"
	Git          ID = "git"
	TokenIn      ID = "token_in"
	TokenOut     ID = "token_out"
	TokenTotal   ID = "token_total"
	CacheRead    ID = "cache_read"
	CacheWrite   ID = "cache_write"
	Cost         ID = "cost"
	ContextPct   ID = "context_pct"
	ContextTotal ID = "context_total"
	Quota        ID = "quota"
	Session      ID = "session"
	TimeSpent    ID = "time_spent"
	Clock        ID = "time"
	Hostname     ID = "hostname"
	Vibe         ID = "vibe"
	Update       ID = "update"
)

// Rendered is a segment's output. Invisible segments take no space.
type Rendered struct {
	Content string
	Visible bool
}

// Func renders one segment.
type Func func(ctx *renderctx.Context) Rendered

var hidden = Rendered{}

func show(content string) Rendered {
	return Rendered{Content: content, Visible: content != ""}
}

var registry = map[ID]Func{
	Model:        renderModel,
	Thinking:     renderThinking,
	Path:         renderPath,
	Git:          renderGit,
	TokenIn:      renderTokenIn,
	TokenOut:     renderTokenOut,
	TokenTotal:   renderTokenTotal,
	CacheRead:    renderCacheRead,
	CacheWrite:   renderCacheWrite,
	Cost:         renderCost,
	ContextPct:   renderContextPct,
	ContextTotal: renderContextTotal,
	Quota:        renderQuota,
	Session:      renderSession,
	TimeSpent:    renderTimeSpent,
	Clock:        renderClock,
	Hostname:     renderHostname,
	Vibe:         renderVibe,
	Update:       renderUpdate,
}

// All lists every known id in catalogue order.
var All = []ID{
	Model, Thinking, Path, Git,
	TokenIn, TokenOut, TokenTotal, CacheRead, CacheWrite, Cost,
	ContextPct, ContextTotal, Quota,
	Session, TimeSpent, Clock, Hostname, Vibe, Update,
}

// Known reports whether id is in the catalogue.
func Known(id ID) bool {
	_, ok := registry[id]
	return ok
}

// Render renders id against ctx. Unknown ids are invisible.
func Render(id ID, ctx *renderctx.Context) Rendered {
	fn, ok := registry[id]
	if !ok || ctx == nil {
		return hidden
	}
	if ctx.Theme == nil {
		c := *ctx
		c.Theme = theme.Default()
		ctx = &c
	}
	return fn(ctx)
}

// RenderAll renders ids in order and keeps only visible segments.
func RenderAll(ids []ID, ctx *renderctx.Context) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if r := Render(id, ctx); r.Visible {
			out = append(out, r.Content)
		}
	}
	return out
}
