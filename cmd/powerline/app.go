package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/gitx"
	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/quota"
	"github.com/young1lin/powerline-footer/internal/statusline/config"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
	"github.com/young1lin/powerline-footer/internal/update"
)

const fallbackWidth = 120

// stderrUI reports notices on stderr. One-shot commands have no surfaces.
type stderrUI struct {
	w io.Writer
}

func (stderrUI) SetEditor(host.RenderFunc)         {}
func (stderrUI) SetFooter(host.RenderFunc)         {}
func (stderrUI) SetWidget(string, host.RenderFunc) {}
func (stderrUI) RequestRender()                    {}

func (u stderrUI) Notify(n host.Notice) {
	if n.Severity == host.SeverityInfo {
		return
	}
	fmt.Fprintf(u.w, "%s: %s\n", n.Severity, n.Message)
}

// sourceOptions selects which slow sources a command wires.
type sourceOptions struct {
	git      bool
	offline  bool // no quota or update requests
	onCommit func()
	ctx      context.Context
}

// newSources wires git, quota and update according to cfg.
func newSources(cfg *config.Config, dir string, opts sourceOptions) *renderctx.Sources {
	sc := renderctx.SourcesConfig{OnCommit: opts.onCommit, Context: opts.ctx}
	if opts.git {
		sc.Git = gitx.NewClient(gitx.NewExecRunner(gitx.DefaultTimeout), dir)
	}
	if opts.offline {
		return renderctx.NewSources(sc)
	}
	if cfg.QuotaEnabled() {
		sc.Quota = quota.NewFetcher()
	}
	// Development builds never report an update.
	if cfg.UpdateCheckEnabled() && update.Version != "dev" {
		sc.Update = update.NewChecker(update.Version, update.WithStateFile(paths.UpdateStatePath()))
	}
	return renderctx.NewSources(sc)
}

// warm reads every source and waits up to timeout for the fetches, so a
// one-shot render shows fresh data instead of placeholders. Dirty counts are
// only fetched once the branch is known.
func warm(src *renderctx.Sources, timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	deadline := time.Now().Add(timeout)
	src.Branch()
	src.Quota()
	src.Update()
	src.WaitTimeout(time.Until(deadline))
	if src.Branch() != "" {
		src.Dirty()
		src.WaitTimeout(time.Until(deadline))
	}
}

// terminalWidth returns the width of stdout, then $COLUMNS, then a default.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	var cols int
	if _, err := fmt.Sscanf(os.Getenv("COLUMNS"), "%d", &cols); err == nil && cols > 0 {
		return cols
	}
	return fallbackWidth
}

// setColorProfile applies --color. "auto" keeps colour unless NO_COLOR is
// set; status line hosts read from a pipe, so terminal detection would
// always pick plain text.
func setColorProfile(mode string) error {
	switch mode {
	case "", "auto":
		if termenv.EnvNoColor() {
			lipgloss.SetColorProfile(termenv.Ascii)
		} else {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("invalid --color %q (auto, always, truecolor, never)", mode)
	}
	return nil
}
