package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/parser"
	"github.com/young1lin/powerline-footer/internal/statusline/config"
	"github.com/young1lin/powerline-footer/internal/statusline/footer"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
)

// payload is the JSON a host writes to the status line command's stdin.
type payload struct {
	SessionID      string `json:"session_id"`
	Cwd            string `json:"cwd"`
	TranscriptPath string `json:"transcript_path"`
	Model          struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"model"`
	Workspace struct {
		CurrentDir string `json:"current_dir"`
	} `json:"workspace"`
	Thinking      string `json:"thinking_level"`
	ContextWindow int64  `json:"context_window_size"`
	Cost          *struct {
		TotalCostUSD float64 `json:"total_cost_usd"`
	} `json:"cost"`
	Width int `json:"width"`
}

func (p *payload) dir() string {
	if p.Workspace.CurrentDir != "" {
		return p.Workspace.CurrentDir
	}
	return p.Cwd
}

// session merges the payload over whatever the session log says.
func (p *payload) session() host.Session {
	var s host.Session
	if p.TranscriptPath != "" {
		if sum, err := parser.ReadSessionFile(p.TranscriptPath); err == nil {
			s = sum.Session
		}
	}
	if p.SessionID != "" {
		s.ID = p.SessionID
	}
	if d := p.dir(); d != "" {
		s.Cwd = d
	}
	if p.Model.ID != "" {
		s.ModelID = p.Model.ID
	}
	if p.Model.DisplayName != "" {
		s.ModelName = p.Model.DisplayName
	}
	if p.Thinking != "" {
		s.Thinking = p.Thinking
	}
	if p.ContextWindow > 0 {
		s.ContextWindow = p.ContextWindow
	}
	if p.Cost != nil {
		s.Usage.CostUSD = p.Cost.TotalCostUSD
	}
	if s.ContextWindow == 0 && s.ModelID != "" {
		s.ContextWindow = int64(paths.ContextWindow(s.ModelID))
	}
	if s.ModelName == "" && s.ModelID != "" {
		s.ModelName = paths.ModelName(s.ModelID)
	}
	return s
}

func parsePayload(data []byte) (*payload, error) {
	data = bytes.ReplaceAll(data, []byte{0}, nil)
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse status line input: %w", err)
	}
	return &p, nil
}

type renderOptions struct {
	width   int
	preset  string
	color   string
	noGit   bool
	offline bool
	wait    time.Duration
}

func renderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the status line from JSON on stdin",
		Long: `Reads the host's status line JSON from stdin and prints the primary
row, followed by the overflow row when segments did not fit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setColorProfile(opts.color); err != nil {
				return err
			}
			if cmd.InOrStdin() == os.Stdin && !stdinIsPipe() {
				return fmt.Errorf("render reads JSON from stdin; try \"powerline preview\"")
			}
			return runRender(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Terminal width (default: detect)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "Preset to render (overrides settings)")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "Colour output: auto, always, truecolor, never")
	cmd.Flags().BoolVar(&opts.noGit, "no-git", false, "Skip git lookups")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Skip quota and update requests")
	cmd.Flags().DurationVar(&opts.wait, "wait", 300*time.Millisecond, "How long to wait for git and quota before printing")
	return cmd
}

func runRender(in io.Reader, out, errOut io.Writer, opts renderOptions) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	p, err := parsePayload(data)
	if err != nil || p == nil {
		return err
	}

	dir := p.dir()
	if dir == "" {
		dir = workDir()
	}
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if opts.preset != "" {
		cfg.Preset = opts.preset
	}
	initLogging(cfg)

	src := newSources(cfg, dir, sourceOptions{git: !opts.noGit, offline: opts.offline})
	session := p.session()
	f := footer.New(footer.Options{
		UI:      stderrUI{w: errOut},
		Config:  cfg,
		Builder: renderctx.NewBuilder(src, nil),
		Session: func() host.Session { return session },
	})
	f.Enable()
	warm(src, opts.wait)

	width := opts.width
	if width <= 0 {
		width = p.Width
	}
	if width <= 0 {
		width = terminalWidth()
	}

	frame := f.Frame(width)
	if frame.Primary != "" {
		fmt.Fprintln(out, frame.Primary)
	}
	if frame.Secondary != "" {
		fmt.Fprintln(out, frame.Secondary)
	}
	return nil
}

// stdinIsPipe reports whether stdin is redirected.
func stdinIsPipe() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
