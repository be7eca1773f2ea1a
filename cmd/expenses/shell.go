package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

// runShell opens the store, runs the interactive menu and releases the store
// when the menu exits.
func runShell(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	shell := cli.NewShell(
		storage.NewExpenseRepository(store, nil),
		storage.NewCategoryRepository(store),
		newRenderer(cfg),
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
	)
	return shell.Run(ctx)
}
