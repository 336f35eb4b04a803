package footer

import (
	"regexp"
	"strings"

	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
)

// Tools that write files.
var writeTools = map[string]bool{
	"write":        true,
	"edit":         true,
	"multiedit":    true,
	"notebookedit": true,
}

// branchChanging matches git subcommands that may move HEAD.
var branchChanging = regexp.MustCompile(`\bgit\s+(?:-C\s+\S+\s+)?(checkout|switch|merge|rebase|pull|reset|commit|stash|cherry-pick|revert|branch|worktree|am)\b`)

// IsBranchChanging reports whether a shell command may change the branch.
func IsBranchChanging(cmd string) bool {
	return branchChanging.MatchString(cmd)
}

func (f *Footer) sources() *renderctx.Sources {
	return f.builder.Sources()
}

func (f *Footer) onSessionStart(host.Event) {
	f.sources().Invalidate(renderctx.KindBranch, renderctx.KindDirty)
	if !f.Enabled() {
		f.Enable()
	}
}

func (f *Footer) onToolCall(ev host.Event) {
	tool := strings.ToLower(ev.ToolName)
	switch {
	case writeTools[tool]:
		f.sources().Invalidate(renderctx.KindDirty)
	case tool == "bash":
		cmd, _ := ev.Input["command"].(string)
		f.onCommand(cmd)
	default:
		return
	}
	f.requestRender()
}

func (f *Footer) onUserBash(ev host.Event) {
	f.onCommand(ev.Command)
	f.requestRender()
}

// onCommand invalidates after a shell command. Any command may touch the
// working tree; only some move HEAD.
func (f *Footer) onCommand(cmd string) {
	if IsBranchChanging(cmd) {
		f.sources().Invalidate(renderctx.KindBranch, renderctx.KindDirty)
		return
	}
	f.sources().Invalidate(renderctx.KindDirty)
}

func (f *Footer) onAgentStart(host.Event) {
	if f.vibes != nil && f.Enabled() {
		f.vibes.Start()
	}
}

func (f *Footer) onAgentEnd(host.Event) {
	if f.vibes != nil {
		f.vibes.Stop()
	}
	f.sources().Invalidate(renderctx.KindDirty)
	f.requestRender()
}

func (f *Footer) requestRender() {
	if f.ui != nil {
		f.ui.RequestRender()
	}
}
