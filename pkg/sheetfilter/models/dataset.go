package models

import (
	"encoding/json"
)

// Dataset is an ordered sequence of rows sharing one set of columns.
type Dataset struct {
	// Columns is the header in display order.
	Columns []string `json:"columns"`
	// Rows holds the records in source order.
	Rows []Row `json:"-"`
}

// NewDataset creates an empty dataset with the given header.
func NewDataset(columns ...string) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows. A nil dataset has no rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// IsEmpty reports whether the dataset has no rows.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// HasColumn reports whether name is part of the header.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row to the end of the dataset.
func (d *Dataset) Append(r Row) {
	d.Rows = append(d.Rows, r)
}

// Values returns row i as a slice ordered by Columns.
func (d *Dataset) Values(i int) []Cell {
	row := d.Rows[i]
	out := make([]Cell, len(d.Columns))
	for j, col := range d.Columns {
		out[j] = row.Get(col)
	}
	return out
}

// DisplayValues returns row i as display strings ordered by Columns.
func (d *Dataset) DisplayValues(i int) []string {
	cells := d.Values(i)
	out := make([]string, len(cells))
	for j, c := range cells {
		out[j] = c.Display()
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// MarshalJSON encodes the dataset as {"columns": [...], "rows": [[...], ...]}
// so column order survives encoding.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	type view struct {
		Columns []string `json:"columns"`
		Rows    [][]Cell `json:"rows"`
	}
	v := view{Columns: d.Columns, Rows: make([][]Cell, len(d.Rows))}
	if v.Columns == nil {
		v.Columns = []string{}
	}
	for i := range d.Rows {
		v.Rows[i] = d.Values(i)
	}
	return json.Marshal(v)
}
