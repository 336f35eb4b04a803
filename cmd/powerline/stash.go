package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/store"
)

// flagStashDB overrides the stash location; tests point it at a temp dir.
var flagStashDB string

func stashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "Keep prompts for later",
		Long: `Saves prompt drafts in a local database so they can be restored in
a later session. "pop" prints and removes the newest entry.`,
	}
	cmd.PersistentFlags().StringVar(&flagStashDB, "db", "", "Stash database (default: user cache dir)")

	cmd.AddCommand(&cobra.Command{
		Use:   "save [text...]",
		Short: "Save a prompt (from args or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}
			return withStash(func(db *store.DB) error {
				e, err := db.Save(text, workDir(), "")
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved #%d: %s\n", e.ID, e.Title())
				return nil
			})
		},
	})

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved prompts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStash(func(db *store.DB) error {
				entries, err := db.List(limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(w, "Stash is empty.")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(w, "#%-4d %-14s %s\n", e.ID, humanize.Time(e.CreatedAt), e.Title())
				}
				return nil
			})
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "pop",
		Short: "Print and remove the newest prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStash(func(db *store.DB) error {
				e, err := db.Pop()
				if errors.Is(err, store.ErrEmpty) {
					return errors.New("stash is empty")
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.Text)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "drop <id>",
		Short: "Remove one prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return withStash(func(db *store.DB) error {
				if err := db.Drop(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dropped #%d\n", id)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStash(func(db *store.DB) error {
				n, err := db.Clear()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s\n", n, plural(n, "prompt"))
				return nil
			})
		},
	})
	return cmd
}

func withStash(fn func(*store.DB) error) error {
	path := flagStashDB
	if path == "" {
		path = paths.StashDBPath()
	}
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open stash: %w", err)
	}
	defer db.Close()
	return fn(db)
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
