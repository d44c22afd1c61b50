package sheetfilter

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook saves a two-sheet workbook and returns its bytes.
func writeTestWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "A")
	f.SetCellValue("Sheet1", "B1", "B")
	f.SetCellValue("Sheet1", "A2", 1)
	f.SetCellValue("Sheet1", "A3", 2)
	f.SetCellValue("Sheet1", "B3", 3)
	f.SetCellValue("Sheet1", "B4", 4)
	if _, err := f.NewSheet("Extra"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	f.SetCellValue("Extra", "A1", "Name")
	f.SetCellValue("Extra", "A2", "x")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(tmpFile, writeTestWorkbook(t), 0644); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := LoadFile(tmpFile, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if wb.Name != "book.xlsx" {
		t.Errorf("Name = %q", wb.Name)
	}
	if !reflect.DeepEqual(wb.SheetNames, []string{"Sheet1", "Extra"}) {
		t.Errorf("SheetNames = %v", wb.SheetNames)
	}
	ds, _ := wb.Sheet("Sheet1")
	if ds.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", ds.Len())
	}
	if len(wb.Info) != 2 || wb.Info[0].Ref != "A1:B4" || wb.Info[0].Cells != 6 {
		t.Errorf("Info = %+v", wb.Info)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != "read" {
		t.Errorf("Expected read LoadError, got %v", err)
	}
}

func TestLoadReaderSheetSelection(t *testing.T) {
	opts := DefaultOptions()
	opts.Sheets = []string{"Extra"}

	wb, err := LoadReader("book.xlsx", bytes.NewReader(writeTestWorkbook(t)), opts)
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if !reflect.DeepEqual(wb.SheetNames, []string{"Extra"}) {
		t.Errorf("SheetNames = %v", wb.SheetNames)
	}
}

func TestLoadReaderDetectsFormat(t *testing.T) {
	wb, err := LoadReader("noext", bytes.NewReader(writeTestWorkbook(t)), DefaultOptions())
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if len(wb.SheetNames) != 2 {
		t.Errorf("Expected zip content to load as xlsx, got %v", wb.SheetNames)
	}

	wb, err = LoadReader("people.csv", strings.NewReader("id,name\n1,\n"), DefaultOptions())
	if err != nil {
		t.Fatalf("LoadReader csv failed: %v", err)
	}
	if !reflect.DeepEqual(wb.SheetNames, []string{"people"}) {
		t.Errorf("SheetNames = %v", wb.SheetNames)
	}

	_, err = LoadReader("notes.txt", strings.NewReader("hello"), DefaultOptions())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadReaderTooLarge(t *testing.T) {
	opts := Options{MaxBytes: 4}
	_, err := LoadReader("a.csv", strings.NewReader("a,b\n1,2\n"), opts)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

func TestLoadURL(t *testing.T) {
	data := writeTestWorkbook(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/book.xlsx" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	wb, err := Load(context.Background(), srv.URL+"/files/book.xlsx", DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if wb.Name != "book.xlsx" || len(wb.SheetNames) != 2 {
		t.Errorf("Unexpected workbook %q %v", wb.Name, wb.SheetNames)
	}

	_, err = LoadURL(context.Background(), srv.Client(), srv.URL+"/missing.xlsx", DefaultOptions())
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != "fetch" {
		t.Errorf("Expected fetch LoadError, got %v", err)
	}
}

func TestLoadUsesClientOption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.Client = &http.Client{Timeout: 20 * time.Millisecond}
	_, err := Load(context.Background(), srv.URL+"/slow.csv", opts)
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != "fetch" {
		t.Errorf("Expected fetch LoadError from client timeout, got %v", err)
	}

	opts.Client = srv.Client()
	wb, err := Load(context.Background(), srv.URL+"/slow.csv", opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(wb.SheetNames, []string{"slow"}) {
		t.Errorf("SheetNames = %v", wb.SheetNames)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://example.com/a.xlsx", true},
		{"http://localhost:8080/a.xlsx", true},
		{"ftp://example.com/a.xlsx", false},
		{"/tmp/a.xlsx", false},
		{"a.xlsx", false},
		{"C:\\data\\a.xlsx", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.expected {
			t.Errorf("IsURL(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
