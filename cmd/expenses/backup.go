package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/config"
)

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <path>",
		Short: "Write a verified copy of the expense database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := config.ExpandPath(args[0])

			ctx := cmd.Context()
			store, err := initStorage(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			if err := store.Backup(ctx, dest); err != nil {
				return fmt.Errorf("failed to back up database: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Backup written to "+dest))
			return nil
		},
	}
}
