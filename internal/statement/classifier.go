package statement

import (
	"strings"

	"github.com/example/tally/internal/extract"
	"github.com/example/tally/internal/pattern"
)

// Classification is the outcome of classifying one extracted row.
type Classification struct {
	Fields pattern.Fields
	Type   LineType
	Raw    string
}

// ClassifyRow joins the row's cell texts with the cell separator and
// evaluates the statement rules. Rows whose cells are all blank are
// layout artifacts and yield no classification at all; anything else
// that matches no rule is reported as UNMATCHED with its raw text.
func ClassifyRow(row extract.Row) (Classification, bool) {
	if row.Blank() {
		return Classification{}, false
	}

	joined := strings.Join(row.Texts(), Sep)
	label, fields, ok := StatementRules.Match(joined)
	if !ok {
		return Classification{Type: LineUnmatched, Raw: joined}, true
	}

	return Classification{Type: LineType(label), Fields: fields, Raw: joined}, true
}
