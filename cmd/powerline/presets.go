package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/young1lin/powerline-footer/internal/host"
	"github.com/young1lin/powerline-footer/internal/statusline/config"
	"github.com/young1lin/powerline-footer/internal/statusline/footer"
	"github.com/young1lin/powerline-footer/internal/statusline/preset"
	"github.com/young1lin/powerline-footer/internal/statusline/renderctx"
	"github.com/young1lin/powerline-footer/internal/statusline/segment"
)

func presetsCmd() *cobra.Command {
	var (
		sample bool
		width  int
		color  string
	)
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List presets and their segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setColorProfile(color); err != nil {
				return err
			}
			cfg, err := config.Load(workDir())
			if err != nil {
				cfg = config.DefaultConfig()
			}
			return listPresets(cmd.OutOrStdout(), cfg, sample, width)
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "Render each preset with sample data")
	cmd.Flags().IntVarP(&width, "width", "w", fallbackWidth, "Width for --sample")
	cmd.Flags().StringVar(&color, "color", "auto", "Colour output: auto, always, truecolor, never")
	return cmd
}

func listPresets(w io.Writer, cfg *config.Config, sample bool, width int) error {
	session := demoSession("~/projects/powerline-footer")
	for _, name := range preset.Names() {
		def := cfg.Definition(name)
		marker := " "
		if name == cfg.Preset || (cfg.Preset == "" && name == preset.DefaultName) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s %s\n", marker, name, joinIDs(def.Primary))
		if len(def.Secondary) > 0 {
			fmt.Fprintf(w, "  %-10s %s\n", "", joinIDs(def.Secondary))
		}
		if !sample {
			continue
		}
		f := footer.New(footer.Options{
			Config:  cfg,
			Builder: renderctx.NewBuilder(nil, nil),
			Session: func() host.Session { return session },
		})
		f.Command(name)
		frame := f.Frame(width)
		fmt.Fprintf(w, "  %s\n", frame.Primary)
		if frame.Secondary != "" {
			fmt.Fprintf(w, "  %s\n", frame.Secondary)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func joinIDs(ids []segment.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " ")
}
