package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/Veraticus/expense-tracker/internal/storage"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List and add the categories expenses are recorded against.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			names, err := storage.NewCategoryRepository(store).ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, name := range names {
				fmt.Fprintf(out, "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("category name cannot be empty")
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx, loadConfig())
			if err != nil {
				return err
			}
			defer closeStorage(store)

			result, err := storage.NewCategoryRepository(store).AddIfAbsent(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			out := cmd.OutOrStdout()
			if result == model.CategoryExists {
				fmt.Fprintln(out, cli.FormatWarning("Category already exists"))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess("Added new category: "+name))
			return nil
		},
	}
}
