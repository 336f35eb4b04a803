package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/update"
)

func updateCmd() *cobra.Command {
	var optOut, optIn bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for a newer release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if optOut && optIn {
				return fmt.Errorf("--opt-out and --opt-in are exclusive")
			}
			checker := update.NewChecker(update.Version, update.WithStateFile(paths.UpdateStatePath()))
			w := cmd.OutOrStdout()
			if optOut || optIn {
				if err := checker.SetOptOut(optOut); err != nil {
					return err
				}
				if optOut {
					fmt.Fprintln(w, "Update checks disabled.")
				} else {
					fmt.Fprintln(w, "Update checks enabled.")
				}
				return nil
			}

			if update.Version == "dev" {
				fmt.Fprintln(w, "Development build; update checks are skipped.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if latest := checker.Latest(ctx); latest != "" {
				fmt.Fprintf(w, "powerline %s is available (running %s).\n", latest, update.Version)
				return nil
			}
			fmt.Fprintf(w, "powerline %s is up to date.\n", update.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&optOut, "opt-out", false, "Stop checking for updates")
	cmd.Flags().BoolVar(&optIn, "opt-in", false, "Resume checking for updates")
	return cmd
}
