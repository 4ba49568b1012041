package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tally/internal/common"
	"github.com/example/tally/internal/model"
	"github.com/example/tally/internal/statement"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testLedger(t *testing.T) *statement.Ledger {
	t.Helper()

	seed := decimal.RequireFromString("1000.00")
	l := statement.NewLedger()
	l.AccountNumber = "12345678"
	l.SortCode = "90-11-22"
	l.BIC = "BOFIIE2D"
	l.StartPage(&seed)

	tx := model.NewTransaction(
		time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		model.TypeDebit,
		decimal.RequireFromString("50.00"),
		"POS05JAN SHOP",
	)
	tx.Tags = append(tx.Tags, model.TagPurchase)
	tx.Details = map[string]string{"merchant": "SHOP"}
	l.AddTransaction(tx, nil)
	l.FinishPage(nil)

	return l
}

func TestSQLiteStorage_SaveAndLoadLedger(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	id, err := store.SaveLedger(ctx, "statement.pdf", testLedger(t))
	require.NoError(t, err)
	require.NotZero(t, id)

	records, err := store.ListStatements(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "statement.pdf", r.Source)
	assert.Equal(t, "12345678", r.AccountNumber)
	assert.Equal(t, "90-11-22", r.SortCode)
	assert.Equal(t, "BOFIIE2D", r.BIC)
	assert.Equal(t, 1, r.PageCount)
	assert.True(t, decimal.RequireFromString("950.00").Equal(r.TotalBalance))

	transactions, err := store.Transactions(ctx, id)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	tx := transactions[0]
	assert.Equal(t, model.TypeDebit, tx.Type)
	assert.True(t, decimal.RequireFromString("50.00").Equal(tx.Amount))
	assert.Equal(t, "POS05JAN SHOP", tx.Description)
	assert.Equal(t, []string{"DEBIT", model.TagPurchase}, tx.Tags)
	assert.Equal(t, map[string]string{"merchant": "SHOP"}, tx.Details)
	assert.Equal(t, 2024, tx.Date.Year())
}

func TestSQLiteStorage_TransactionsUnknownStatement(t *testing.T) {
	store := testStorage(t)

	_, err := store.Transactions(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store := testStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSQLiteStorage_EmptyList(t *testing.T) {
	store := testStorage(t)

	records, err := store.ListStatements(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
