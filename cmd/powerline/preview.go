package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/monitor"
	"github.com/young1lin/powerline-footer/internal/statusline/config"
	"github.com/young1lin/powerline-footer/internal/statusline/footer"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
	"github.com/young1lin/powerline-footer/internal/vibes"
	"github.com/young1lin/powerline-footer/tui"
)

type previewOptions struct {
	preset  string
	session string
	demo    bool
	offline bool
}

func previewCmd() *cobra.Command {
	var opts previewOptions
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the footer in an interactive terminal",
		Long: `Opens a full-screen preview that hosts the footer the way an agent
does. It follows the newest session log unless --session or --demo is
given, and watches the repository for branch and index changes.

Keys: t toggle, p next preset, a agent start/stop, e edit, b git bash,
+/- width, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "Preset to start with")
	cmd.Flags().StringVarP(&opts.session, "session", "s", "", "Session log to follow")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "Use sample session data")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip quota and update requests")
	return cmd
}

func runPreview(opts previewOptions) error {
	dir := workDir()
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if opts.preset != "" {
		cfg.Preset = opts.preset
	}
	initLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui := tui.NewSurfaces()
	src := newSources(cfg, dir, sourceOptions{git: true, offline: opts.offline, ctx: ctx})

	watcher, err := monitor.WatchGit(dir, src, monitor.DefaultDebounce)
	switch {
	case err == nil:
		defer watcher.Close()
	case !errors.Is(err, monitor.ErrNotRepository):
		fmt.Fprintf(os.Stderr, "warning: git watch: %v\n", err)
	}

	sessions := &tui.SessionStore{}
	follower, err := followSession(opts, sessions, ui)
	if err != nil {
		return err
	}
	if follower != nil {
		defer follower.Close()
	} else {
		sessions.Set(demoSession(dir))
	}

	ticker := vibes.NewTicker(&vibes.StaticGenerator{}, vibes.DefaultInterval, ui.RequestRender)
	f := footer.New(footer.Options{
		UI:      ui,
		Config:  cfg,
		Builder: renderctx.NewBuilder(src, nil),
		Session: sessions.Get,
		Vibes:   ticker,
	})
	var events host.Dispatcher
	f.Register(&events)
	defer f.Disable()

	m := tui.NewModel(ui, f, &events, sessions)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// followSession tails the requested or newest session log. It returns nil
// when there is nothing to follow.
func followSession(opts previewOptions, sessions *tui.SessionStore, ui *tui.Surfaces) (*monitor.Follower, error) {
	if opts.demo {
		return nil, nil
	}
	path := opts.session
	if path == "" {
		latest, err := monitor.LatestSession(monitor.OSFileSystem{}, paths.SessionsDir())
		if err != nil {
			return nil, nil
		}
		path = latest.Path
	}
	fol, err := monitor.Follow(path, func(s host.Session) {
		sessions.Set(s)
		ui.RequestRender()
	})
	if err != nil {
		return nil, fmt.Errorf("follow %s: %w", path, err)
	}
	sessions.Set(fol.Session())
	return fol, nil
}

// demoSession is shown when no session log is available.
func demoSession(dir string) host.Session {
	const model = "claude-sonnet-4-5"
	return host.Session{
		ID:            "demo",
		Cwd:           dir,
		ModelID:       model,
		ModelName:     paths.ModelName(model),
		ContextWindow: int64(paths.ContextWindow(model)),
		Thinking:      "medium",
		Usage: host.Usage{
			InputTokens:      18_400,
			OutputTokens:     6_200,
			CacheReadTokens:  412_000,
			CacheWriteTokens: 31_000,
			CostUSD:          0.87,
			ContextTokens:    64_500,
		},
	}
}
