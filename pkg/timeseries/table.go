package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Table is a pmrep CSV export held in memory: a header row plus data rows.
// Cells are kept as strings until a column is extracted.
type Table struct {
	Header []string
	Rows   [][]string
}

// LoadCSV reads a CSV file into a Table. Files ending in .zst are
// transparently decompressed; pmrep exports from long captures are often
// stored compressed.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	return ReadTable(r)
}

// ReadTable parses CSV data from r. The first record is the header.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // pmrep occasionally emits ragged trailing rows
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV has no header row", ErrEmptySeries)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &Table{Header: header, Rows: records[1:]}, nil
}

// ColumnIndex returns the index of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), or "" when the row is too short
func (t *Table) Cell(row, col int) string {
	if col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// IsNumericColumn reports whether every non-empty cell in the column parses
// as a float and at least one such cell exists.
func (t *Table) IsNumericColumn(col int) bool {
	seen := false
	for i := range t.Rows {
		cell := strings.TrimSpace(t.Cell(i, col))
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
