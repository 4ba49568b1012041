package statement

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/example/tally/internal/model"
)

// Mismatch records a difference between a balance the statement
// declares and the balance computed from transactions. Declared values
// are untrusted; the computed total is always authoritative.
type Mismatch struct {
	Context  string
	Declared decimal.Decimal
	Computed decimal.Decimal
}

// Ledger owns the ordered transaction sequence, the running balance and
// the page state for one statement. Page operations never fail: a
// reconciliation mismatch is recorded and logged, not raised.
type Ledger struct {
	// Account metadata picked up from statement header lines.
	AccountNumber string
	SortCode      string
	BIC           string

	transactions []model.Transaction
	mismatches   []Mismatch
	totalBalance decimal.Decimal
	pageCount    int
	activePage   bool
	opened       bool
}

// NewLedger creates an empty ledger with no active page.
func NewLedger() *Ledger {
	return &Ledger{}
}

// StartPage opens a new statement page. The very first declared forward
// balance seeds the running total, since there is no computed value yet
// to prefer; every later declared value is only reconciled against the
// computed one.
func (l *Ledger) StartPage(declared *decimal.Decimal) {
	if !l.opened {
		if declared != nil {
			l.totalBalance = *declared
		}
		l.opened = true
	} else if declared != nil {
		l.reconcile("balance forward", *declared)
	}
	l.activePage = true
	l.pageCount++
}

// FinishPage closes the active page, reconciling against a declared
// subtotal when one is present.
func (l *Ledger) FinishPage(declared *decimal.Decimal) {
	if declared != nil {
		l.reconcile("subtotal", *declared)
	}
	l.activePage = false
}

// AddTransaction appends the transaction and folds its signed amount
// into the running balance, then reconciles against the declared
// running balance from the statement column when one is present.
func (l *Ledger) AddTransaction(tx model.Transaction, declared *decimal.Decimal) {
	l.transactions = append(l.transactions, tx)
	l.totalBalance = l.totalBalance.Add(tx.SignedAmount())
	if declared != nil {
		l.reconcile("transaction balance", *declared)
	}
}

func (l *Ledger) reconcile(context string, declared decimal.Decimal) {
	if declared.Equal(l.totalBalance) {
		return
	}
	slog.Warn("balance mismatch",
		"context", context,
		"declared", declared.StringFixed(2),
		"computed", l.totalBalance.StringFixed(2))
	l.mismatches = append(l.mismatches, Mismatch{
		Context:  context,
		Declared: declared,
		Computed: l.totalBalance,
	})
}

// Transactions returns the recorded transactions in statement order.
func (l *Ledger) Transactions() []model.Transaction {
	return l.transactions
}

// Credits returns the transactions that moved money in.
func (l *Ledger) Credits() []model.Transaction {
	return l.filter(model.TypeCredit)
}

// Debits returns the transactions that moved money out.
func (l *Ledger) Debits() []model.Transaction {
	return l.filter(model.TypeDebit)
}

func (l *Ledger) filter(txType model.TransactionType) []model.Transaction {
	var out []model.Transaction
	for _, tx := range l.transactions {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}

// TotalBalance returns the computed running balance.
func (l *Ledger) TotalBalance() decimal.Decimal {
	return l.totalBalance
}

// PageCount returns the number of pages opened so far.
func (l *Ledger) PageCount() int {
	return l.pageCount
}

// ActivePage reports whether a page is currently open.
func (l *Ledger) ActivePage() bool {
	return l.activePage
}

// Mismatches returns every reconciliation mismatch recorded so far.
func (l *Ledger) Mismatches() []Mismatch {
	return l.mismatches
}
