package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tally/internal/cli"
	"github.com/example/tally/internal/storage"
)

func statementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "List saved statements",
		RunE:  runStatements,
	}

	cmd.Flags().Int64("transactions", 0, "Show the transactions of one saved statement by id")

	return cmd
}

func runStatements(cmd *cobra.Command, _ []string) error {
	store, err := storage.NewSQLiteStorage(defaultStoragePath())
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate storage: %w", err)
	}

	if id, _ := cmd.Flags().GetInt64("transactions"); id != 0 {
		transactions, err := store.Transactions(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		for _, tx := range transactions {
			fmt.Printf("%s  %-6s %10s  %s\n",
				tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Description)
		}
		return nil
	}

	records, err := store.ListStatements(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list statements: %w", err)
	}

	if len(records) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No statements saved yet."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Saved statements"))
	for _, r := range records {
		fmt.Printf("#%-4d %s  %s  pages=%d  balance=%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02"), r.Source, r.PageCount,
			r.TotalBalance.StringFixed(2))
	}

	return nil
}
