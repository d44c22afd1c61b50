package parser

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads a CSV document as a single sheet named name.
func ReadCSV(r io.Reader, name string) ([]SheetGrid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return []SheetGrid{{Name: name, Rows: rows}}, nil
}
