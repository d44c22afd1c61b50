package models

// Row maps column name to cell value. Columns absent from the map read as null.
type Row map[string]Cell

// Get returns the cell stored under column, or a null cell.
func (r Row) Get(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return NullCell()
}

// Clone returns a shallow copy of the row. Cells are values, so the copy is
// independent of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
