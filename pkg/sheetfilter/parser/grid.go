// Package parser provides spreadsheet file parsing utilities.
package parser

// CellType is the value type a workbook records for a cell.
type CellType byte

const (
	// CellUnknown means the source carries no type (csv, booleans, errors).
	CellUnknown CellType = iota
	// CellText is a cell stored as a string.
	CellText
	// CellNumber is a cell stored as a number.
	CellNumber
)

// SheetGrid is the raw content of one sheet, row by row.
type SheetGrid struct {
	// Name is the sheet name.
	Name string
	// Rows holds formatted cell text. Rows may have different lengths.
	Rows [][]string
	// Types parallels Rows. Nil or short rows mean CellUnknown.
	Types [][]CellType
	// Raw parallels Rows with the unformatted value of number cells.
	// A missing entry means the formatted text is the raw value.
	Raw [][]string
}

func (g SheetGrid) typeAt(row, col int) CellType {
	if row < len(g.Types) && col < len(g.Types[row]) {
		return g.Types[row][col]
	}
	return CellUnknown
}

func (g SheetGrid) rawAt(row, col int) string {
	if row < len(g.Raw) && col < len(g.Raw[row]) && g.Raw[row][col] != "" {
		return g.Raw[row][col]
	}
	if row < len(g.Rows) && col < len(g.Rows[row]) {
		return g.Rows[row][col]
	}
	return ""
}
