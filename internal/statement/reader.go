package statement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/tally/internal/common"
	"github.com/example/tally/internal/extract"
	"github.com/example/tally/internal/model"
	"github.com/example/tally/internal/pattern"
)

// DefaultColumnSeparator is the horizontal position dividing the debit
// column from the credit column. The extraction collaborator preserves
// only cell positions, not column semantics, so an amount cell whose
// right edge falls left of this threshold is a debit and anything else
// is a credit.
const DefaultColumnSeparator = 420.0

// Config carries the layout knobs for a reader.
type Config struct {
	// ColumnSeparator overrides DefaultColumnSeparator when non-zero.
	ColumnSeparator float64
}

// Diagnostics collects the non-fatal anomalies found during a read.
// A non-empty diagnostics never prevents the ledger from being usable.
type Diagnostics struct {
	UnmatchedLines        []string
	UnmatchedTransactions []model.Transaction
	Mismatches            []Mismatch
}

// Clean reports whether the read completed without any anomaly.
func (d *Diagnostics) Clean() bool {
	return len(d.UnmatchedLines) == 0 &&
		len(d.UnmatchedTransactions) == 0 &&
		len(d.Mismatches) == 0
}

// Reader drives the line classifier over an extraction source and folds
// each classified row into a ledger, single pass, in document order. A
// Reader is single-use and not safe for concurrent use; the active
// reference date and page state live on it for the duration of one read.
type Reader struct {
	source     extract.Source
	tagger     *Tagger
	activeDate time.Time
	threshold  float64
}

// NewReader creates a reader over the given extraction source.
func NewReader(source extract.Source, cfg Config) *Reader {
	threshold := cfg.ColumnSeparator
	if threshold == 0 {
		threshold = DefaultColumnSeparator
	}
	return &Reader{
		source:    source,
		tagger:    NewTagger(),
		threshold: threshold,
	}
}

// Read consumes every row from the source and returns the populated
// ledger together with the read diagnostics. Classification misses and
// reconciliation mismatches never abort the read; the only errors are
// extraction failure and a violated reference-date invariant.
func (r *Reader) Read(ctx context.Context) (*Ledger, *Diagnostics, error) {
	rows, err := r.source.Rows(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, common.ErrNoRows
	}

	ledger := NewLedger()
	diags := &Diagnostics{}

	for _, row := range rows {
		cls, ok := ClassifyRow(row)
		if !ok {
			continue
		}
		if err := r.readLine(ledger, diags, cls, row); err != nil {
			return nil, nil, err
		}
	}

	diags.Mismatches = ledger.Mismatches()
	r.report(diags)

	return ledger, diags, nil
}

func (r *Reader) readLine(ledger *Ledger, diags *Diagnostics, cls Classification, row extract.Row) error {
	switch cls.Type {
	case LineBalanceForward:
		if date, ok := cls.Fields.Time(fieldDate); ok {
			r.activeDate = date
		}
		ledger.StartPage(decimalField(cls.Fields, "balance"))
	case LineSubtotal:
		ledger.FinishPage(decimalField(cls.Fields, "subtotal"))
	case LineEndStatement:
		ledger.FinishPage(nil)
	case LineTransaction:
		if !ledger.ActivePage() {
			// Still recorded below: dropping a financial record is
			// worse than recording one against inconsistent page state.
			slog.Warn("unexpected transaction outside active page", "line", cls.Raw)
		}
		return r.readTransaction(ledger, diags, cls.Fields, row)
	case LineAccountNumber:
		ledger.AccountNumber = cls.Fields.String("account_number")
	case LineBranchCode:
		ledger.SortCode = cls.Fields.String("sort_code")
	case LineBICCode:
		ledger.BIC = cls.Fields.String("bic_code")
	case LineUnmatched:
		if ledger.ActivePage() {
			diags.UnmatchedLines = append(diags.UnmatchedLines, cls.Raw)
		}
		// Outside a page this is header/footer noise.
	}
	return nil
}

func (r *Reader) readTransaction(ledger *Ledger, diags *Diagnostics, fields pattern.Fields, row extract.Row) error {
	if date, ok := fields.Time(fieldDate); ok {
		r.activeDate = date
	}

	txType := model.TypeCredit
	if len(row) > 1 && row[1].Right() < r.threshold {
		txType = model.TypeDebit
	}

	amount, _ := fields.Decimal("amount")
	tx := model.NewTransaction(r.activeDate, txType, amount, fields.String("desc"))

	tagged, err := r.tagger.Tag(&tx, r.activeDate)
	if err != nil {
		return fmt.Errorf("failed to tag transaction %q: %w", tx.Description, err)
	}
	if !tagged {
		diags.UnmatchedTransactions = append(diags.UnmatchedTransactions, tx)
	}

	slog.Info("transaction", "tx", tx.String())
	ledger.AddTransaction(tx, decimalField(fields, "balance"))
	return nil
}

func (r *Reader) report(diags *Diagnostics) {
	if len(diags.UnmatchedLines) > 0 {
		common.LogWarn("unmatched statement lines", common.Fields{
			"count": len(diags.UnmatchedLines),
			"lines": diags.UnmatchedLines,
		})
	}
	if len(diags.UnmatchedTransactions) > 0 {
		common.LogWarn("unmatched transactions", common.Fields{
			"count":        len(diags.UnmatchedTransactions),
			"transactions": diags.UnmatchedTransactions,
		})
	}
	if diags.Clean() {
		common.LogInfo("statement read success", nil)
	}
}

func decimalField(fields pattern.Fields, key string) *decimal.Decimal {
	if d, ok := fields.Decimal(key); ok {
		return &d
	}
	return nil
}
