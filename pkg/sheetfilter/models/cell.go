// Package models defines data structures for spreadsheet filtering.
package models

import (
	"encoding/json"
	"strconv"
)

// NullText is the placeholder displayed and exported for empty cells.
const NullText = "NULL"

// CellKind identifies the variant held by a Cell.
type CellKind int

const (
	// KindNull is a missing cell.
	KindNull CellKind = iota
	// KindString is a text cell. An empty string still counts as empty.
	KindString
	// KindNumber is a numeric cell.
	KindNumber
)

// String returns the lowercase kind name.
func (k CellKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// Cell is a single sheet value.
type Cell struct {
	// Kind is the variant of the value.
	Kind CellKind
	// Str is the text of a string cell, or the formatted text of a number cell.
	Str string
	// Num is the value of a number cell.
	Num float64
}

// NullCell returns an empty cell.
func NullCell() Cell {
	return Cell{Kind: KindNull}
}

// StringCell returns a text cell.
func StringCell(s string) Cell {
	return Cell{Kind: KindString, Str: s}
}

// NumberCell returns a numeric cell. text is the formatted representation;
// when empty the shortest decimal form of f is used.
func NumberCell(f float64, text string) Cell {
	if text == "" {
		text = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return Cell{Kind: KindNumber, Num: f, Str: text}
}

// IsEmpty reports whether the cell is null or an empty string.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindNull || (c.Kind == KindString && c.Str == "")
}

// Text returns the raw text of the cell. Null cells yield "".
func (c Cell) Text() string {
	if c.Kind == KindNull {
		return ""
	}
	return c.Str
}

// Display returns the text shown for the cell, NullText for empty cells.
func (c Cell) Display() string {
	if c.IsEmpty() {
		return NullText
	}
	return c.Str
}

// OrNull returns the cell unchanged, or a NullText string cell when empty.
func (c Cell) OrNull() Cell {
	if c.IsEmpty() {
		return StringCell(NullText)
	}
	return c
}

// Value returns the cell as a plain Go value: nil, string or float64.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case KindNumber:
		return c.Num
	case KindString:
		return c.Str
	default:
		return nil
	}
}

// MarshalJSON encodes the cell as null, a JSON string or a JSON number.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}
