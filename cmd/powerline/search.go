package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/monitor"
	"github.com/young1lin/powerline-footer/internal/search"
)

type searchOptions struct {
	fuzzy bool
	limit int
	role  string
	dir   string
}

func searchCmd() *cobra.Command {
	var opts searchOptions
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search messages across session logs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.role != "" && opts.role != "user" && opts.role != "assistant" {
				return fmt.Errorf("invalid --role %q (user, assistant)", opts.role)
			}
			if opts.dir == "" {
				opts.dir = paths.SessionsDir()
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), opts, time.Now())
		},
	}
	cmd.Flags().BoolVar(&opts.fuzzy, "fuzzy", false, "Fuzzy matching")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Maximum results")
	cmd.Flags().StringVar(&opts.role, "role", "", "Only user or assistant messages")
	cmd.Flags().StringVar(&opts.dir, "sessions", "", "Session log directory")
	return cmd
}

func runSearch(ctx context.Context, w io.Writer, query string, opts searchOptions, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	files, err := monitor.ListSessions(monitor.OSFileSystem{}, opts.dir)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	logs := make([]string, len(files))
	for i, f := range files {
		logs[i] = f.Path
	}
	msgs, err := search.Load(ctx, logs, search.DefaultWorkers)
	if err != nil {
		return err
	}

	mode := search.Substring
	if opts.fuzzy {
		mode = search.Fuzzy
	}
	results := search.Search(msgs, query, search.Options{Mode: mode, Limit: opts.limit, Role: opts.role})
	if len(results) == 0 {
		fmt.Fprintf(w, "No matches for %q in %d messages.\n", query, len(msgs))
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(w, "%-16s %-9s %s  %s\n", r.Age(now), r.Role, shortID(r.SessionID), r.Snippet)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}
