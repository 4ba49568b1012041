package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func ledgerTx(txType model.TransactionType, amount string) model.Transaction {
	return model.NewTransaction(
		time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		txType,
		dec(amount),
		"test",
	)
}

func TestLedger_FirstPageSeedsBalance(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("1000.00"))

	assert.True(t, l.ActivePage())
	assert.Equal(t, 1, l.PageCount())
	assert.True(t, dec("1000.00").Equal(l.TotalBalance()))
	assert.Empty(t, l.Mismatches())
}

func TestLedger_BalanceInvariant(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("1000.00"))

	l.AddTransaction(ledgerTx(model.TypeDebit, "50.00"), nil)
	assert.True(t, dec("950.00").Equal(l.TotalBalance()))

	l.AddTransaction(ledgerTx(model.TypeCredit, "125.50"), nil)
	assert.True(t, dec("1075.50").Equal(l.TotalBalance()))

	l.FinishPage(nil)
	assert.False(t, l.ActivePage())
	assert.True(t, dec("1075.50").Equal(l.TotalBalance()))

	// A later page's declared forward balance reconciles, never seeds.
	l.StartPage(decPtr("1075.50"))
	assert.Equal(t, 2, l.PageCount())
	assert.True(t, dec("1075.50").Equal(l.TotalBalance()))
	assert.Empty(t, l.Mismatches())
}

func TestLedger_DeclaredBalanceNeverMutatesComputed(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("1000.00"))
	l.AddTransaction(ledgerTx(model.TypeDebit, "50.00"), decPtr("900.00"))

	assert.True(t, dec("950.00").Equal(l.TotalBalance()),
		"computed balance is authoritative")
	require.Len(t, l.Mismatches(), 1)

	m := l.Mismatches()[0]
	assert.Equal(t, "transaction balance", m.Context)
	assert.True(t, dec("900.00").Equal(m.Declared))
	assert.True(t, dec("950.00").Equal(m.Computed))
}

func TestLedger_SubtotalMismatchRecorded(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("1000.00"))
	l.AddTransaction(ledgerTx(model.TypeDebit, "50.00"), nil)
	l.FinishPage(decPtr("900.00"))

	assert.True(t, dec("950.00").Equal(l.TotalBalance()))
	require.Len(t, l.Mismatches(), 1)
	assert.Equal(t, "subtotal", l.Mismatches()[0].Context)
}

func TestLedger_ForwardBalanceMismatchOnLaterPage(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("1000.00"))
	l.FinishPage(nil)
	l.StartPage(decPtr("999.99"))

	assert.True(t, dec("1000.00").Equal(l.TotalBalance()))
	require.Len(t, l.Mismatches(), 1)
	assert.Equal(t, "balance forward", l.Mismatches()[0].Context)
}

func TestLedger_CreditsAndDebitsViews(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("0.00"))
	l.AddTransaction(ledgerTx(model.TypeDebit, "10.00"), nil)
	l.AddTransaction(ledgerTx(model.TypeCredit, "20.00"), nil)
	l.AddTransaction(ledgerTx(model.TypeDebit, "30.00"), nil)

	assert.Len(t, l.Transactions(), 3)
	assert.Len(t, l.Debits(), 2)
	assert.Len(t, l.Credits(), 1)
	assert.True(t, dec("-20.00").Equal(l.TotalBalance()))
}

func TestLedger_OverdrawnSeed(t *testing.T) {
	l := NewLedger()
	l.StartPage(decPtr("-250.00"))
	l.AddTransaction(ledgerTx(model.TypeCredit, "300.00"), decPtr("50.00"))

	assert.True(t, dec("50.00").Equal(l.TotalBalance()))
	assert.Empty(t, l.Mismatches())
}
