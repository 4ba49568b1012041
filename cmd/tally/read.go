package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/tally/internal/cli"
	"github.com/example/tally/internal/common"
	"github.com/example/tally/internal/extract"
	"github.com/example/tally/internal/statement"
	"github.com/example/tally/internal/storage"
)

func readCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a statement into a reconciled ledger",
		Long: `Read a bank statement and print the resulting ledger.

The input is either the JSON output of a table-extraction run (.json)
or the statement PDF itself (.pdf).`,
		Args: cobra.ExactArgs(1),
		RunE: runRead,
	}

	cmd.Flags().Bool("save", false, "Persist the ledger to storage")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	path := args[0]
	save, _ := cmd.Flags().GetBool("save")
	format, _ := cmd.Flags().GetString("format")

	source, err := sourceFor(path)
	if err != nil {
		return err
	}

	reader := statement.NewReader(source, statement.Config{
		ColumnSeparator: viper.GetFloat64("statement.boi.column_separator"),
	})

	ledger, diags, err := reader.Read(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read statement: %w", err)
	}

	switch format {
	case "json":
		if err := printJSON(ledger, diags); err != nil {
			return err
		}
	default:
		printSummary(path, ledger, diags)
	}

	if save {
		store, err := storage.NewSQLiteStorage(defaultStoragePath())
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("failed to migrate storage: %w", err)
		}

		id, err := store.SaveLedger(cmd.Context(), filepath.Base(path), ledger)
		if err != nil {
			common.LogError(err, "failed to save ledger", common.Fields{"path": defaultStoragePath()})
			return common.NewUserError("Could not save the ledger", err)
		}
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Saved as statement #%d", id)))
	}

	return nil
}

func sourceFor(path string) (extract.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return extract.NewTabulaSource(path), nil
	case ".pdf":
		return extract.NewPDFSource(path), nil
	default:
		return nil, common.NewUserError(
			fmt.Sprintf("Unsupported input %q: expected a .json extraction output or a .pdf", path), nil)
	}
}

func printSummary(path string, ledger *statement.Ledger, diags *statement.Diagnostics) {
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Statement: %s", filepath.Base(path))))

	if ledger.AccountNumber != "" || ledger.SortCode != "" {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Account %s  Sort code %s  BIC %s",
			ledger.AccountNumber, ledger.SortCode, ledger.BIC)))
	}

	fmt.Printf("%s %d transactions across %d pages\n",
		cli.BoldStyle.Render("Read:"), len(ledger.Transactions()), ledger.PageCount())
	fmt.Printf("%s %d credits, %d debits\n",
		cli.BoldStyle.Render("Split:"), len(ledger.Credits()), len(ledger.Debits()))
	fmt.Printf("%s %s\n",
		cli.BoldStyle.Render("Closing balance:"), ledger.TotalBalance().StringFixed(2))

	for _, tx := range ledger.Transactions() {
		fmt.Printf("  %s  %-6s %10s  %s\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Description)
	}

	if diags.Clean() {
		fmt.Println(cli.SuccessStyle.Render("No anomalies."))
		return
	}
	if n := len(diags.UnmatchedLines); n > 0 {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("%d unmatched lines", n)))
	}
	if n := len(diags.UnmatchedTransactions); n > 0 {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("%d unmatched transactions", n)))
	}
	for _, m := range diags.Mismatches {
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf(
			"balance mismatch (%s): declared %s, computed %s",
			m.Context, m.Declared.StringFixed(2), m.Computed.StringFixed(2))))
	}
}

func printJSON(ledger *statement.Ledger, diags *statement.Diagnostics) error {
	out := struct {
		AccountNumber string `json:"account_number,omitempty"`
		SortCode      string `json:"sort_code,omitempty"`
		BIC           string `json:"bic,omitempty"`
		TotalBalance  string `json:"total_balance"`
		Transactions  any    `json:"transactions"`
		Diagnostics   any    `json:"diagnostics,omitempty"`
	}{
		AccountNumber: ledger.AccountNumber,
		SortCode:      ledger.SortCode,
		BIC:           ledger.BIC,
		TotalBalance:  ledger.TotalBalance().StringFixed(2),
		Transactions:  ledger.Transactions(),
	}
	if !diags.Clean() {
		out.Diagnostics = diags
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
