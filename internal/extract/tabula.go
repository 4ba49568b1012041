package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// tabulaCell mirrors one cell of tabula's JSON output format.
type tabulaCell struct {
	Text   string  `json:"text"`
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// tabulaTable mirrors one extracted table of tabula's JSON output format.
type tabulaTable struct {
	Data [][]tabulaCell `json:"data"`
}

// TabulaSource reads rows from the JSON produced by a tabula
// table-extraction run (output_format=json, stream mode).
type TabulaSource struct {
	path string
}

// NewTabulaSource creates a source backed by a tabula JSON file.
func NewTabulaSource(path string) *TabulaSource {
	return &TabulaSource{path: path}
}

// Rows decodes the extraction output and flattens its tables into one
// ordered sequence of rows.
func (s *TabulaSource) Rows(_ context.Context) ([]Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extraction output: %w", err)
	}
	defer func() { _ = f.Close() }()

	var tables []tabulaTable
	if err := json.NewDecoder(f).Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode extraction output %s: %w", s.path, err)
	}

	var rows []Row
	for _, table := range tables {
		for _, line := range table.Data {
			row := make(Row, len(line))
			for i, c := range line {
				row[i] = Cell{Text: c.Text, Left: c.Left, Width: c.Width}
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}
