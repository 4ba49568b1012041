package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/tally/internal/common"
	"github.com/example/tally/internal/model"
	"github.com/example/tally/internal/statement"
)

// StatementRecord is one saved statement read.
type StatementRecord struct {
	CreatedAt     time.Time
	Source        string
	AccountNumber string
	SortCode      string
	BIC           string
	TotalBalance  decimal.Decimal
	ID            int64
	PageCount     int
}

// SaveLedger stores the ledger and its transactions, returning the new
// statement id. Amounts are stored as text to keep them exact.
func (s *SQLiteStorage) SaveLedger(ctx context.Context, source string, ledger *statement.Ledger) (int64, error) {
	if ledger == nil {
		return 0, fmt.Errorf("ledger cannot be nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO statements (source, account_number, sort_code, bic, total_balance, page_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		source, ledger.AccountNumber, ledger.SortCode, ledger.BIC,
		ledger.TotalBalance().StringFixed(2), ledger.PageCount())
	if err != nil {
		return 0, fmt.Errorf("failed to insert statement: %w", err)
	}

	statementID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get statement id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (statement_id, date, type, amount, description, tags, details)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range ledger.Transactions() {
		var details []byte
		if len(t.Details) > 0 {
			details, err = json.Marshal(t.Details)
			if err != nil {
				return 0, fmt.Errorf("failed to marshal transaction details: %w", err)
			}
		}
		if _, err := stmt.ExecContext(ctx,
			statementID, t.Date, string(t.Type), t.Amount.StringFixed(2),
			t.Description, strings.Join(t.Tags, " "), string(details)); err != nil {
			return 0, fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return statementID, nil
}

// ListStatements returns every saved statement, newest first.
func (s *SQLiteStorage) ListStatements(ctx context.Context) ([]StatementRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, account_number, sort_code, bic, total_balance, page_count, created_at
		FROM statements ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []StatementRecord
	for rows.Next() {
		var r StatementRecord
		var balance string
		if err := rows.Scan(&r.ID, &r.Source, &r.AccountNumber, &r.SortCode, &r.BIC,
			&balance, &r.PageCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		r.TotalBalance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored balance %q: %w", balance, err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Transactions returns the stored transactions of one statement in
// statement order.
func (s *SQLiteStorage) Transactions(ctx context.Context, statementID int64) ([]model.Transaction, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM statements WHERE id = ?", statementID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check statement: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("statement %d: %w", statementID, common.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, type, amount, description, tags, details
		FROM transactions WHERE statement_id = ? ORDER BY id`, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var txType, amount string
		var tags, details sql.NullString
		if err := rows.Scan(&t.Date, &txType, &amount, &t.Description, &tags, &details); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = model.TransactionType(txType)
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		if tags.Valid && tags.String != "" {
			t.Tags = strings.Fields(tags.String)
		}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &t.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction details: %w", err)
			}
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// IsNotFound reports whether err signals a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
