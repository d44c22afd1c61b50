// Package sheetfilter loads spreadsheet workbooks, filters sheet rows by
// null / non-null tests and exports the filtered view.
package sheetfilter

import (
	"fmt"
	"net/http"
	"strings"
)

// Format represents an export file format.
type Format string

const (
	// FormatXLSX writes an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV writes comma separated values.
	FormatCSV Format = "csv"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (must be xlsx or csv)", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of files written in format f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// DefaultMaxBytes caps the size of a fetched or read workbook.
const DefaultMaxBytes int64 = 50 << 20

// Options configures workbook loading.
type Options struct {
	// MaxBytes limits how many bytes are read from the source.
	// Zero means DefaultMaxBytes.
	MaxBytes int64
	// Sheets restricts loading to the named sheets. Empty loads all sheets.
	Sheets []string
	// Client fetches URL sources. Nil means http.DefaultClient.
	Client *http.Client
}

// DefaultOptions returns default loading options.
func DefaultOptions() Options {
	return Options{
		MaxBytes: DefaultMaxBytes,
	}
}

// maxBytes returns the effective byte limit.
func (o Options) maxBytes() int64 {
	if o.MaxBytes > 0 {
		return o.MaxBytes
	}
	return DefaultMaxBytes
}

// wantSheet reports whether the named sheet should be loaded.
func (o Options) wantSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}
