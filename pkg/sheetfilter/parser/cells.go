package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// BuildDataset converts a raw sheet grid into a Dataset.
// The first non-empty row inside the data bounds is the header. Data rows
// that hold no value are skipped, and cells past the end of a short row are
// null. Cells the workbook stores as text stay strings.
func BuildDataset(g SheetGrid) *models.Dataset {
	rows := g.Rows
	b, ok := FindDataBounds(rows)
	if !ok {
		return models.NewDataset()
	}

	headerCells := make([]string, b.Width())
	copy(headerCells, cellsInBounds(rows[b.MinRow], b))
	header := headerNames(headerCells)
	ds := models.NewDataset(header...)

	for rowIdx := b.MinRow + 1; rowIdx <= b.MaxRow && rowIdx < len(rows); rowIdx++ {
		values := cellsInBounds(rows[rowIdx], b)
		row := make(models.Row, len(header))
		hasData := false

		for colIdx, name := range header {
			if colIdx >= len(values) || values[colIdx] == "" {
				row[name] = models.NullCell()
				continue
			}
			hasData = true
			row[name] = g.cell(rowIdx, b.MinCol+colIdx, values[colIdx])
		}

		if hasData {
			ds.Append(row)
		}
	}

	return ds
}

// cell converts the text at (row, col), trusting the stored cell type when
// the workbook has one.
func (g SheetGrid) cell(row, col int, text string) models.Cell {
	switch g.typeAt(row, col) {
	case CellText:
		return models.StringCell(text)
	case CellNumber:
		f, err := strconv.ParseFloat(g.rawAt(row, col), 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return models.NumberCell(f, text)
		}
	}
	return ParseValue(text)
}

// cellsInBounds returns the part of row that lies inside the column bounds.
func cellsInBounds(row []string, b Bounds) []string {
	if b.MinCol >= len(row) {
		return nil
	}
	end := b.MaxCol + 1
	if end > len(row) {
		end = len(row)
	}
	return row[b.MinCol:end]
}

// headerNames derives unique column names from a header row.
// Blank headers become __EMPTY, __EMPTY_1, ... and repeated names get a
// numeric suffix (Name, Name_1, Name_2).
func headerNames(cells []string) []string {
	names := make([]string, 0, len(cells))
	used := make(map[string]bool)
	emptyCount := 0

	for _, raw := range cells {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = "__EMPTY"
			if emptyCount > 0 {
				name = "__EMPTY_" + strconv.Itoa(emptyCount)
			}
			emptyCount++
		}
		if used[name] {
			base := name
			for n := 1; ; n++ {
				name = base + "_" + strconv.Itoa(n)
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		names = append(names, name)
	}

	return names
}

// ParseValue converts untyped cell text into a Cell.
// Text becomes a number only when the number prints back as the same text,
// so "00123", "+5", "1e3" and "1.50" stay strings and round-trip unchanged.
func ParseValue(s string) models.Cell {
	if s == "" {
		return models.NullCell()
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == s {
			return models.NumberCell(float64(i), s)
		}
		return models.StringCell(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return models.NumberCell(f, s)
	}
	return models.StringCell(s)
}
