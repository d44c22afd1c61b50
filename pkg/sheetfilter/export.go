package sheetfilter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the sheet name used in exported workbooks.
const ExportSheetName = "Filtered Data"

// DefaultFileName is used when no export file name is supplied.
const DefaultFileName = "download"

// FileSink persists exported bytes under a file name.
type FileSink interface {
	WriteFile(name string, data []byte) error
}

// DirSink writes exported files into a directory.
type DirSink string

// WriteFile writes data to name inside the directory, creating it if needed.
func (d DirSink) WriteFile(name string, data []byte) error {
	dir := string(d)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filepath.Base(name)), data, 0644)
}

// ExportFileName returns "<name>.<format>", with DefaultFileName for a blank name.
func ExportFileName(name string, format Format) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	}
	return name + "." + string(format)
}

// Export writes ds to w in the given format. Empty cells are written as NULL.
func Export(w io.Writer, ds *models.Dataset, format Format) error {
	if ds == nil {
		ds = models.NewDataset()
	}
	switch format {
	case FormatXLSX:
		return exportXLSX(w, ds)
	case FormatCSV:
		return exportCSV(w, ds)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportBytes is Export into a byte slice.
func ExportBytes(ds *models.Dataset, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, ds, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXLSX(w io.Writer, ds *models.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if len(ds.Columns) > 0 {
		header := make([]interface{}, len(ds.Columns))
		for i, col := range ds.Columns {
			header[i] = col
		}
		if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i := range ds.Rows {
		cells := ds.Values(i)
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = c.OrNull().Value()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func exportCSV(w io.Writer, ds *models.Dataset) error {
	cw := csv.NewWriter(w)
	if len(ds.Columns) > 0 {
		if err := cw.Write(ds.Columns); err != nil {
			return err
		}
	}
	for i := range ds.Rows {
		if err := cw.Write(ds.DisplayValues(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
