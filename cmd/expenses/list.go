package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

func listCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `List recorded expenses, newest first, followed by their total.

Periods:
  day    since midnight today
  week   the last 7 days
  month  the last 30 days
  all    every expense`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := model.ParsePeriod(period)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			expenses, err := storage.NewExpenseRepository(store, nil).List(ctx, p)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			cli.WriteExpenses(cmd.OutOrStdout(), expenses)
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", string(model.PeriodAll), "time period (day, week, month, all)")

	return cmd
}
