package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Bounds is the zero-based bounding box of the non-empty cells of a sheet.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Width returns the number of columns covered by b.
func (b Bounds) Width() int {
	return b.MaxCol - b.MinCol + 1
}

// Ref returns b in Excel range notation, e.g. "A1:D10".
func (b Bounds) Ref() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// FindDataBounds finds the bounding box of non-empty cells.
// ok is false when the grid holds no value at all.
func FindDataBounds(rows [][]string) (b Bounds, ok bool) {
	b = Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if b.MinRow < 0 || rowIdx < b.MinRow {
					b.MinRow = rowIdx
				}
				if b.MaxRow < 0 || rowIdx > b.MaxRow {
					b.MaxRow = rowIdx
				}
				if b.MinCol < 0 || colIdx < b.MinCol {
					b.MinCol = colIdx
				}
				if b.MaxCol < 0 || colIdx > b.MaxCol {
					b.MaxCol = colIdx
				}
			}
		}
	}

	return b, b.MinRow >= 0
}

// CountNonEmptyCells counts non-empty cells within bounds.
func CountNonEmptyCells(rows [][]string, b Bounds) int {
	count := 0
	for rowIdx := b.MinRow; rowIdx <= b.MaxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := b.MinCol; colIdx <= b.MaxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
