// Package csvio reads and writes the tabular transaction files consumed and
// produced by the batch scorer. Tables are kept in memory with their column
// order intact so unknown columns pass through untouched.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Table is an ordered, in-memory CSV table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Record returns row i as a field mapping keyed by the header columns.
func (t *Table) Record(i int) map[string]string {
	record := make(map[string]string, len(t.Header))
	for col, name := range t.Header {
		if col < len(t.Rows[i]) {
			record[name] = t.Rows[i][col]
		}
	}
	return record
}

// ReadTable loads a CSV file. A missing file or a structurally malformed
// table (ragged rows, no header) is a hard error: the batch cannot run
// without readable input.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: missing header row", path)
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteTable writes a table to path, creating or truncating the file.
func WriteTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
