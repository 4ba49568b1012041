package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransaction(t *testing.T) {
	date := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	tx := NewTransaction(date, TypeDebit, decimal.NewFromInt(50), "POS05JAN SHOP")

	assert.Equal(t, []string{"DEBIT"}, tx.Tags, "type tag is always first")
	assert.Equal(t, "", tx.SubType())
	assert.Equal(t, date, tx.Date)
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("12.34")

	debit := NewTransaction(time.Time{}, TypeDebit, amount, "")
	assert.True(t, amount.Neg().Equal(debit.SignedAmount()))

	credit := NewTransaction(time.Time{}, TypeCredit, amount, "")
	assert.True(t, amount.Equal(credit.SignedAmount()))
}

func TestTransaction_SubType(t *testing.T) {
	tx := NewTransaction(time.Time{}, TypeCredit, decimal.Zero, "")
	assert.Equal(t, "", tx.SubType())

	tx.Tags = append(tx.Tags, TagInterest)
	assert.Equal(t, TagInterest, tx.SubType())
}

func TestTransactionType_IsValid(t *testing.T) {
	assert.True(t, TypeCredit.IsValid())
	assert.True(t, TypeDebit.IsValid())
	assert.False(t, TransactionType("REFUND").IsValid())
}
