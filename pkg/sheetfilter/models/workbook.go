package models

// Workbook is a collection of named sheets loaded from one file.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string `json:"book_name"`
	// SheetNames lists sheet names in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its rows.
	Sheets map[string]*Dataset `json:"-"`
	// Info holds per-sheet summaries in workbook order.
	Info []SheetInfo `json:"sheets"`
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(name string) *Workbook {
	return &Workbook{Name: name, Sheets: make(map[string]*Dataset)}
}

// AddSheet appends a sheet. Adding an existing name replaces its rows and
// keeps its position.
func (w *Workbook) AddSheet(name string, ds *Dataset) {
	if _, ok := w.Sheets[name]; !ok {
		w.SheetNames = append(w.SheetNames, name)
	}
	w.Sheets[name] = ds
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*Dataset, bool) {
	ds, ok := w.Sheets[name]
	return ds, ok
}

// FirstSheet returns the name of the first sheet, or "" when there is none.
func (w *Workbook) FirstSheet() string {
	if len(w.SheetNames) == 0 {
		return ""
	}
	return w.SheetNames[0]
}

// SheetInfo summarizes one sheet as found in the source file.
type SheetInfo struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Ref is the range holding data, e.g. "A1:D10". Empty for blank sheets.
	Ref string `json:"ref,omitempty"`
	// Rows is the number of data rows (header excluded).
	Rows int `json:"rows"`
	// Columns is the number of header columns.
	Columns int `json:"columns"`
	// Cells is the number of non-empty cells in Ref.
	Cells int `json:"cells"`
}
