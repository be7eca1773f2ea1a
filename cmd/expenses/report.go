package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Draw a pie chart of spending by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := loadConfig()

			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			totals, err := storage.NewExpenseRepository(store, nil).TotalsByCategory(ctx)
			if err != nil {
				return fmt.Errorf("failed to load spending data: %w", err)
			}

			chart, err := newRenderer(cfg).RenderCategoryPie(ctx, totals)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}

			cli.WriteReport(cmd.OutOrStdout(), chart)
			return nil
		},
	}
}
