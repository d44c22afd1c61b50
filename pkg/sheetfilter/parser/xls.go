package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/record"
	"github.com/shakinm/xlsReader/xls/structure"
)

// ReadXLS reads every sheet of a legacy BIFF (.xls) workbook.
func ReadXLS(r io.ReadSeeker) ([]SheetGrid, error) {
	wb, err := xls.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	var grids []SheetGrid
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sheet, err := wb.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("get sheet %d: %w", i, err)
		}
		if sheet == nil {
			continue
		}

		grid := SheetGrid{Name: sheet.GetName()}
		for rowIdx := 0; rowIdx < sheet.GetNumberRows(); rowIdx++ {
			row, err := sheet.GetRow(rowIdx)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", grid.Name, rowIdx+1, err)
			}
			cols := row.GetCols()
			values := make([]string, len(cols))
			types := make([]CellType, len(cols))
			for colIdx, cell := range cols {
				values[colIdx] = xlsCellText(cell)
				types[colIdx] = xlsCellType(cell)
			}
			grid.Rows = append(grid.Rows, values)
			grid.Types = append(grid.Types, types)
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

// xlsCellText returns the text of a BIFF cell. Blank and placeholder cells
// yield "".
func xlsCellText(data structure.CellData) string {
	if data == nil {
		return ""
	}
	switch data.(type) {
	case *record.Blank, *record.FakeBlank:
		return ""
	case *record.Number, *record.Rk:
		return strconv.FormatFloat(data.GetFloat64(), 'f', -1, 64)
	default:
		return data.GetString()
	}
}

func xlsCellType(data structure.CellData) CellType {
	switch data.(type) {
	case *record.LabelBIFF8, *record.LabelBIFF5, *record.LabelSSt:
		return CellText
	case *record.Number, *record.Rk:
		return CellNumber
	default:
		return CellUnknown
	}
}
