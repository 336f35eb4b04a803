package segment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
	"github.com/young1lin/powerline-footer/internal/statusline/theme"
)

// maxPathWidth is the widest folder name shown before truncation.
const maxPathWidth = 25

func renderModel(ctx *renderctx.Context) Rendered {
	name := ctx.Model
	if name == "" {
		name = ctx.ModelID
	}
	if name == "" {
		return hidden
	}
	name = strings.TrimPrefix(name, "Claude ")
	return show(ctx.Theme.Paint(theme.SlotModel, ctx.Theme.Icons.Model+name))
}

func renderThinking(ctx *renderctx.Context) Rendered {
	level := strings.ToLower(ctx.Thinking)
	if level == "" || level == "off" {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotThinking, ctx.Theme.Icons.Thinking+level))
}

// projectName returns the folder name, truncated by display width.
func projectName(cwd string) string {
	if cwd == "" {
		return ""
	}
	name := filepath.Base(cwd)
	if name == "." || name == string(filepath.Separator) {
		return name
	}
	if runewidth.StringWidth(name) > maxPathWidth {
		return runewidth.Truncate(name, maxPathWidth, "..")
	}
	return name
}

func renderPath(ctx *renderctx.Context) Rendered {
	name := projectName(ctx.Cwd)
	if name == "" {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotPath, ctx.Theme.Icons.Folder+name))
}

func renderGit(ctx *renderctx.Context) Rendered {
	if !ctx.InRepo || ctx.Branch == "" {
		return hidden
	}
	t := ctx.Theme
	out := t.Paint(theme.SlotGitBranch, t.Icons.Branch+ctx.Branch)
	if ctx.Dirty.IsClean() {
		return show(out)
	}
	return show(out + " " + t.Paint(theme.SlotGitDirty, ctx.Dirty.String()))
}

func counter(ctx *renderctx.Context, slot theme.Slot, icon string, n int64) Rendered {
	if n <= 0 {
		return hidden
	}
	return show(ctx.Theme.Paint(slot, icon+Compact(n)))
}

func renderTokenIn(ctx *renderctx.Context) Rendered {
	return counter(ctx, theme.SlotTokens, ctx.Theme.Icons.Input, ctx.Usage.InputTokens)
}

func renderTokenOut(ctx *renderctx.Context) Rendered {
	return counter(ctx, theme.SlotTokens, ctx.Theme.Icons.Output, ctx.Usage.OutputTokens)
}

func renderTokenTotal(ctx *renderctx.Context) Rendered {
	return counter(ctx, theme.SlotTokens, ctx.Theme.Icons.Total, ctx.Usage.Total())
}

func renderCacheRead(ctx *renderctx.Context) Rendered {
	return counter(ctx, theme.SlotCache, ctx.Theme.Icons.Read, ctx.Usage.CacheReadTokens)
}

func renderCacheWrite(ctx *renderctx.Context) Rendered {
	return counter(ctx, theme.SlotCache, ctx.Theme.Icons.Write, ctx.Usage.CacheWriteTokens)
}

func renderCost(ctx *renderctx.Context) Rendered {
	if ctx.Usage.CostUSD <= 0 {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotCost, fmt.Sprintf("$%.2f", ctx.Usage.CostUSD)))
}

// renderContextPct shows the share of the raw window in use. The colour tier
// is measured against the compaction budget, so it turns critical before the
// text reaches 90%.
func renderContextPct(ctx *renderctx.Context) Rendered {
	if ctx.ContextWindow <= 0 {
		return hidden
	}
	tier := ContextTier(ctx.Usage.ContextTokens, ctx.ContextWindow)
	return show(ctx.Theme.Paint(tier.slot(), ctx.Theme.Icons.Context+Percent(ctx.ContextPercent)))
}

func renderContextTotal(ctx *renderctx.Context) Rendered {
	if ctx.ContextWindow <= 0 {
		return hidden
	}
	tier := ContextTier(ctx.Usage.ContextTokens, ctx.ContextWindow)
	text := Compact(ctx.Usage.ContextTokens) + "/" + Compact(ctx.ContextWindow)
	return show(ctx.Theme.Paint(tier.slot(), text))
}

func renderQuota(ctx *renderctx.Context) Rendered {
	label, w, ok := ctx.Quota.Primary()
	if !ok {
		return hidden
	}
	text := fmt.Sprintf("%s%s %s", ctx.Theme.Icons.Quota, label, Percent(w.Utilization))
	if !w.ResetsAt.IsZero() && w.ResetsAt.After(ctx.Now) {
		text += " (" + Duration(w.ResetsAt.Sub(ctx.Now)) + ")"
	}
	tier := TierFor(w.Utilization)
	slot := theme.SlotQuota
	if tier != TierNormal {
		slot = tier.slot()
	}
	return show(ctx.Theme.Paint(slot, text))
}

func renderSession(ctx *renderctx.Context) Rendered {
	id := ctx.SessionID
	if id == "" {
		return hidden
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return show(ctx.Theme.Paint(theme.SlotSession, ctx.Theme.Icons.Session+id))
}

func renderTimeSpent(ctx *renderctx.Context) Rendered {
	if ctx.Elapsed <= 0 {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotTime, ctx.Theme.Icons.Timer+Duration(ctx.Elapsed)))
}

func renderClock(ctx *renderctx.Context) Rendered {
	if ctx.Now.IsZero() {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotTime, ctx.Theme.Icons.Clock+ctx.Now.Format("15:04")))
}

func renderHostname(ctx *renderctx.Context) Rendered {
	if ctx.Host == "" {
		return hidden
	}
	name, _, _ := strings.Cut(ctx.Host, ".")
	return show(ctx.Theme.Paint(theme.SlotHost, ctx.Theme.Icons.Host+name))
}

func renderVibe(ctx *renderctx.Context) Rendered {
	if ctx.Vibe == "" {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotVibe, ctx.Vibe))
}

func renderUpdate(ctx *renderctx.Context) Rendered {
	if ctx.Update == "" {
		return hidden
	}
	return show(ctx.Theme.Paint(theme.SlotUpdate, ctx.Theme.Icons.Update+"v"+ctx.Update))
}
