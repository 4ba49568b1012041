package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tally/internal/common"
	"github.com/example/tally/internal/model"
	"github.com/example/tally/internal/pattern"
)

func newTestTransaction(desc string) model.Transaction {
	return model.NewTransaction(
		time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		model.TypeDebit,
		decimal.NewFromInt(10),
		desc,
	)
}

func TestTagger_Tag(t *testing.T) {
	ref := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		wantDetails map[string]string
		name        string
		desc        string
		wantTag     string
		wantDate    time.Time
	}{
		{
			name:        "purchase with embedded date",
			desc:        "POS05JAN SHOP",
			wantTag:     model.TagPurchase,
			wantDate:    time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			wantDetails: map[string]string{"merchant": "SHOP"},
		},
		{
			name:        "contactless purchase",
			desc:        "POSC11JAN CAFE 14",
			wantTag:     model.TagPurchase,
			wantDate:    time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC),
			wantDetails: map[string]string{"merchant": "CAFE 14"},
		},
		{
			name:        "atm withdrawal",
			desc:        "ATM 15JAN HIGH ST",
			wantTag:     model.TagATMWithdrawal,
			wantDate:    time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			wantDetails: map[string]string{"location": "HIGH ST"},
		},
		{
			name:        "atm withdrawal december wraps to previous year",
			desc:        "ATMD31DEC AIRPORT",
			wantTag:     model.TagATMWithdrawal,
			wantDate:    time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			wantDetails: map[string]string{"location": "AIRPORT"},
		},
		{
			name:        "direct debit",
			desc:        "ELECTRIC CO SEPA DD",
			wantTag:     model.TagDirectDebit,
			wantDetails: map[string]string{"destination": "ELECTRIC CO"},
		},
		{
			name:        "standing order",
			desc:        "TO A/C 87654321SO",
			wantTag:     model.TagStandingOrder,
			wantDetails: map[string]string{"destination": "87654321"},
		},
		{
			name:        "bank transfer",
			desc:        "365 Online RENT",
			wantTag:     model.TagBankTransfer,
			wantDetails: map[string]string{"destination": "RENT"},
		},
		{
			name:     "foreign exchange",
			desc:     "C1501US 24.99@1.08250",
			wantTag:  model.TagForeignExchange,
			wantDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "fees",
			desc:    "NOTIFIED FEES",
			wantTag: model.TagFees,
		},
		{
			name:    "interest",
			desc:    "INTEREST",
			wantTag: model.TagInterest,
		},
		{
			name:    "catch-all",
			desc:    "SOMETHING UNRECOGNIZED",
			wantTag: model.TagOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newTestTransaction(tt.desc)
			tagged, err := NewTagger().Tag(&tx, ref)
			require.NoError(t, err)
			require.True(t, tagged)

			require.Len(t, tx.Tags, 2, "type tag first, then exactly one sub-type tag")
			assert.Equal(t, string(model.TypeDebit), tx.Tags[0])
			assert.Equal(t, tt.wantTag, tx.Tags[1])
			assert.Equal(t, tt.wantTag, tx.SubType())

			if !tt.wantDate.IsZero() {
				assert.Equal(t, tt.wantDate, tx.Date, "description date replaces the column date")
			} else {
				assert.Equal(t, ref, tx.Date, "date untouched when the rule captures none")
			}

			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, tx.Details)
			} else {
				assert.NotContains(t, tx.Details, fieldDate, "consumed date never lands in details")
			}
		})
	}
}

func TestTagger_PrecedenceOverCatchAll(t *testing.T) {
	// INTEREST also matches the catch-all; the earlier rule must win.
	tx := newTestTransaction("INTEREST")
	tagged, err := NewTagger().Tag(&tx, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, tagged)
	assert.Equal(t, model.TagInterest, tx.SubType())
}

func TestTagger_NoMatchWithoutCatchAll(t *testing.T) {
	tagger := &Tagger{rules: pattern.Table{
		{Label: model.TagFees, Pattern: pattern.MustCompile(`^NOTIFIED FEES$`, nil)},
	}}

	tx := newTestTransaction("SOMETHING ELSE")
	tagged, err := tagger.Tag(&tx, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, tagged)
	assert.Equal(t, []string{string(model.TypeDebit)}, tx.Tags, "untagged transaction keeps only its type tag")
}

func TestTagger_PartialDateWithoutReferenceIsAnError(t *testing.T) {
	tx := newTestTransaction("POS05JAN SHOP")
	_, err := NewTagger().Tag(&tx, time.Time{})
	require.ErrorIs(t, err, common.ErrNoReferenceDate)
}

func TestTransactionRules_OrderPinned(t *testing.T) {
	assert.Equal(t, []string{
		model.TagPurchase,
		model.TagATMWithdrawal,
		model.TagDirectDebit,
		model.TagStandingOrder,
		model.TagBankTransfer,
		model.TagForeignExchange,
		model.TagFees,
		model.TagInterest,
		model.TagOther,
	}, TransactionRules.Labels())
}
