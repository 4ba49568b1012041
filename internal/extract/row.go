// Package extract models the external document-to-table extraction
// collaborator: a source that yields, per document, ordered rows of
// positioned cells.
package extract

import (
	"context"
	"strings"
)

// Cell is one extracted table cell with its horizontal placement on the
// source page.
type Cell struct {
	Text  string
	Left  float64
	Width float64
}

// Right returns the cell's right edge.
func (c Cell) Right() float64 {
	return c.Left + c.Width
}

// Row is an ordered sequence of cells from one table row.
type Row []Cell

// Texts returns the cell texts in order.
func (r Row) Texts() []string {
	texts := make([]string, len(r))
	for i, c := range r {
		texts[i] = c.Text
	}
	return texts
}

// Blank reports whether every cell in the row is empty or whitespace.
// Blank rows are layout artifacts, not data.
func (r Row) Blank() bool {
	for _, c := range r {
		if strings.TrimSpace(c.Text) != "" {
			return false
		}
	}
	return true
}

// Source produces the rows of a source document in reading order.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}
