// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a posted movement.
type TransactionType string

// Transaction type constants.
const (
	TypeCredit TransactionType = "CREDIT"
	TypeDebit  TransactionType = "DEBIT"
)

// IsValid checks if the transaction type is one of the known directions.
func (t TransactionType) IsValid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Transaction sub-type tags, in the order the tagger evaluates them.
const (
	TagPurchase        = "PURCHASE"
	TagATMWithdrawal   = "ATM_WITHDRAWAL"
	TagDirectDebit     = "DIRECT_DEBIT"
	TagStandingOrder   = "STANDING_ORDER"
	TagBankTransfer    = "BANK_TRANSFER"
	TagForeignExchange = "FOREIGN_EXCHANGE"
	TagFees            = "FEES"
	TagInterest        = "INTEREST"
	TagOther           = "OTHER"
)

// Transaction represents a single posted movement on a bank statement.
// Amount is always non-negative; Type carries the direction.
type Transaction struct {
	Date        time.Time
	Details     map[string]string
	Type        TransactionType
	Description string
	Tags        []string
	Amount      decimal.Decimal
}

// NewTransaction creates a transaction with its type tag already applied.
func NewTransaction(date time.Time, txType TransactionType, amount decimal.Decimal, description string) Transaction {
	return Transaction{
		Date:        date,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Tags:        []string{string(txType)},
	}
}

// SignedAmount returns the amount with its direction applied: negative
// for debits, positive for credits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// SubType returns the sub-type tag assigned by the tagger, if any.
func (t Transaction) SubType() string {
	if len(t.Tags) < 2 {
		return ""
	}
	return t.Tags[1]
}

// String returns a compact representation used in log output.
func (t Transaction) String() string {
	return fmt.Sprintf("Transaction{%s %s %s %q tags=[%s]}",
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Amount.StringFixed(2),
		t.Description,
		strings.Join(t.Tags, " "))
}
