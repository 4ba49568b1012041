package extract

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// defaultCellGap is the horizontal distance, in PDF points, between two
// text fragments that starts a new cell rather than continuing the
// current one.
const defaultCellGap = 12.0

// PDFSource extracts positioned rows directly from a PDF document,
// reconstructing table rows from text fragment coordinates.
type PDFSource struct {
	path string
	gap  float64
}

// NewPDFSource creates a source backed by a PDF file.
func NewPDFSource(path string) *PDFSource {
	return &PDFSource{path: path, gap: defaultCellGap}
}

// Rows extracts every page's text fragments and groups them into rows
// of cells by coordinate.
func (s *PDFSource) Rows(_ context.Context) (rows []Row, err error) {
	// The PDF library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction crashed: %v", r)
		}
	}()

	f, reader, err := pdf.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows = append(rows, s.pageRows(page.Content())...)
	}

	return rows, nil
}

// pageRows groups one page's text fragments into rows (by Y coordinate)
// and cells (by X runs separated by more than the cell gap).
func (s *PDFSource) pageRows(content pdf.Content) []Row {
	lines := make(map[int][]pdf.Text)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		lines[yKey] = append(lines[yKey], t)
	}

	// PDF Y grows bottom-to-top; reading order is descending Y.
	yKeys := make([]int, 0, len(lines))
	for y := range lines {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var rows []Row
	for _, y := range yKeys {
		fragments := lines[y]
		sort.Slice(fragments, func(a, b int) bool {
			return fragments[a].X < fragments[b].X
		})

		var row Row
		var text strings.Builder
		var left, right float64
		flush := func() {
			if text.Len() == 0 {
				return
			}
			row = append(row, Cell{Text: text.String(), Left: left, Width: right - left})
			text.Reset()
		}
		for _, frag := range fragments {
			if text.Len() > 0 && frag.X-right > s.gap {
				flush()
			}
			if text.Len() == 0 {
				left = frag.X
			}
			text.WriteString(frag.S)
			right = frag.X + frag.W
		}
		flush()

		rows = append(rows, row)
	}

	return rows
}
