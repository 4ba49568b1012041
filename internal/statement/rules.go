// Package statement turns extracted statement rows into a typed,
// balance-reconciled ledger of transactions.
package statement

import (
	"github.com/example/tally/internal/model"
	"github.com/example/tally/internal/pattern"
)

// LineType labels the recognized kinds of statement lines.
type LineType string

// Statement line classification labels.
const (
	LineAccountNumber  LineType = "ACCOUNT_NUMBER"
	LineBranchCode     LineType = "BRANCH_CODE"
	LineBICCode        LineType = "BIC_CODE"
	LineTransaction    LineType = "TRANSACTION"
	LineBalanceForward LineType = "BALANCE_FORWARD"
	LineSubtotal       LineType = "SUBTOTAL"
	LineEndStatement   LineType = "END_STATEMENT"
	LineUnmatched      LineType = "UNMATCHED"
)

// Sep joins a row's cell texts before classification. The unit
// separator never occurs in legitimate statement text, so cell
// boundaries stay unambiguous inside one regex subject.
const Sep = "\x1f"

// fieldDate is the capture name shared by every rule that extracts a
// date, full or partial.
const fieldDate = "date"

// Reusable regex fragments for the statement format.
const (
	reFullDate = `[0-3][0-9] (?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{4}`
	reMonthDay = `[0-3][0-9](?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)`
	reDayMonth = `[0-3][0-9][01][0-9]`
	reAmount   = `[0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{2}`
	reDesc     = `[\w*@.&/'+ -]`
)

// fullDateLayout parses dates like "05 Jan 2024".
const fullDateLayout = "02 Jan 2006"

// StatementRules classifies whole statement lines. Order is the
// precedence contract: first match wins.
var StatementRules = pattern.Table{
	{Label: string(LineAccountNumber), Pattern: pattern.MustCompile(
		`^\x1f\x1fAccount number +(?P<account_number>\d{8})$`, nil)},
	{Label: string(LineBranchCode), Pattern: pattern.MustCompile(
		`^\x1f\x1fBranch code +(?P<sort_code>\d{2}-\d{2}-\d{2})$`, nil)},
	{Label: string(LineBICCode), Pattern: pattern.MustCompile(
		`^\x1f\x1fBank Identifier Code (?P<bic_code>[0-9A-Z]{8})$`, nil)},
	{Label: string(LineBalanceForward), Pattern: pattern.MustCompile(
		`^(?P<date>`+reFullDate+`) BALANCE FORWARD\x1f\x1f(?P<balance>`+reAmount+`(?: OD)?)$`,
		map[string]pattern.Convert{
			fieldDate: pattern.Date(fullDateLayout),
			"balance": pattern.Amount(),
		})},
	{Label: string(LineTransaction), Pattern: pattern.MustCompile(
		`^(?P<date>`+reFullDate+` )?(?P<desc>`+reDesc+`{1,30})\x1f(?P<amount>`+reAmount+`)\x1f(?P<balance>`+reAmount+`(?: OD)?)?$`,
		map[string]pattern.Convert{
			fieldDate: pattern.Date(fullDateLayout),
			"amount":  pattern.Amount(),
			"balance": pattern.Amount(),
		})},
	{Label: string(LineSubtotal), Pattern: pattern.MustCompile(
		`^\x1f\x1fSUBTOTAL: +(?P<subtotal>`+reAmount+`)$`,
		map[string]pattern.Convert{
			"subtotal": pattern.Amount(),
		})},
	{Label: string(LineEndStatement), Pattern: pattern.MustCompile(
		`^This is an eligible deposit under the Deposit Guarantee.*$`, nil)},
}

// TransactionRules assigns sub-type tags from transaction descriptions.
// Specific rules first; the catch-all guarantees every description
// receives some tag and must stay last.
var TransactionRules = pattern.Table{
	{Label: model.TagPurchase, Pattern: pattern.MustCompile(
		`^POSC?(?P<date>`+reMonthDay+`) (?P<merchant>`+reDesc+`{2,12})$`,
		map[string]pattern.Convert{fieldDate: pattern.MonthDayText()})},
	{Label: model.TagATMWithdrawal, Pattern: pattern.MustCompile(
		`^ATMD? ?(?P<date>`+reMonthDay+`) (?P<location>`+reDesc+`{2,12})$`,
		map[string]pattern.Convert{fieldDate: pattern.MonthDayText()})},
	{Label: model.TagDirectDebit, Pattern: pattern.MustCompile(
		`^(?P<destination>`+reDesc+`{2,13}) ?SEPA DD$`, nil)},
	{Label: model.TagStandingOrder, Pattern: pattern.MustCompile(
		`^TO A/C (?P<destination>\d{8})SO$`, nil)},
	{Label: model.TagBankTransfer, Pattern: pattern.MustCompile(
		`^365 Online ?(?P<destination>`+reDesc+`{2,10})$`, nil)},
	{Label: model.TagForeignExchange, Pattern: pattern.MustCompile(
		`^[CAP](?P<date>`+reDayMonth+`)[A-Z]{2} {0,2}(?:`+reAmount+`)@[0-9.]{7}$`,
		map[string]pattern.Convert{fieldDate: pattern.MonthDayDigits()})},
	{Label: model.TagFees, Pattern: pattern.MustCompile(`^NOTIFIED FEES$`, nil)},
	{Label: model.TagInterest, Pattern: pattern.MustCompile(`^INTEREST$`, nil)},
	{Label: model.TagOther, Pattern: pattern.MustCompile(`.*`, nil)},
}
