package statement

import (
	"strings"
	"time"

	"github.com/example/tally/internal/model"
	"github.com/example/tally/internal/pattern"
)

// Tagger assigns sub-type tags to transactions by evaluating their
// descriptions against the transaction rules in priority order.
type Tagger struct {
	rules pattern.Table
}

// NewTagger creates a tagger over the built-in transaction rules.
func NewTagger() *Tagger {
	return &Tagger{rules: TransactionRules}
}

// Tag appends the winning sub-type tag and records any auxiliary
// captured fields in the transaction's details. A partial date captured
// by the rule replaces the transaction's date via ResolveDate, since
// the description-embedded date reflects when the transaction happened
// while the statement column may only reflect posting. Returns false
// when no rule matched, which can only happen without a catch-all.
func (g *Tagger) Tag(tx *model.Transaction, ref time.Time) (bool, error) {
	label, fields, ok := g.rules.Match(tx.Description)
	if !ok {
		return false, nil
	}

	if partial, ok := fields.PartialDate(fieldDate); ok {
		resolved, err := ResolveDate(partial, ref)
		if err != nil {
			return false, err
		}
		tx.Date = resolved
	}

	details := make(map[string]string)
	for name, value := range fields {
		if name == fieldDate {
			continue
		}
		// Greedy captures can drag in boundary whitespace.
		if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
			details[name] = strings.TrimSpace(s)
		}
	}
	if len(details) > 0 {
		tx.Details = details
	}

	tx.Tags = append(tx.Tags, label)
	return true, nil
}
