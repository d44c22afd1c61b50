package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads every sheet of an xlsx workbook in workbook order.
func ReadXLSX(r io.Reader) ([]SheetGrid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var grids []SheetGrid
	for _, sheetName := range f.GetSheetList() {
		grid, err := readXLSXSheet(f, sheetName)
		if err != nil {
			return nil, err
		}
		grids = append(grids, grid)
	}

	return grids, nil
}

// readXLSXSheet reads formatted text, raw values and stored cell types.
func readXLSXSheet(f *excelize.File, sheetName string) (SheetGrid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return SheetGrid{}, fmt.Errorf("get rows for sheet %q: %w", sheetName, err)
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return SheetGrid{}, fmt.Errorf("get raw rows for sheet %q: %w", sheetName, err)
	}

	types := make([][]CellType, len(rows))
	for rowIdx, row := range rows {
		types[rowIdx] = make([]CellType, len(row))
		for colIdx, text := range row {
			if text == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return SheetGrid{}, err
			}
			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return SheetGrid{}, fmt.Errorf("get type of %s!%s: %w", sheetName, cellName, err)
			}
			types[rowIdx][colIdx] = xlsxCellType(typ)
		}
	}

	return SheetGrid{Name: sheetName, Rows: rows, Types: types, Raw: raw}, nil
}

// xlsxCellType maps an excelize cell type. Cells without a type attribute
// hold numbers.
func xlsxCellType(typ excelize.CellType) CellType {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return CellText
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return CellNumber
	default:
		return CellUnknown
	}
}
