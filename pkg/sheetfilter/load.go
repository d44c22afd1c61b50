package sheetfilter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/parser"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load loads a workbook from an http(s) URL or a local path.
// URLs are fetched with opts.Client.
func Load(ctx context.Context, source string, opts Options) (*models.Workbook, error) {
	if IsURL(source) {
		return LoadURL(ctx, opts.Client, source, opts)
	}
	return LoadFile(source, opts)
}

// LoadURL fetches a workbook over HTTP and parses it.
func LoadURL(ctx context.Context, client *http.Client, rawURL string, opts Options) (*models.Workbook, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, NewLoadError(rawURL, "fetch", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, NewLoadError(rawURL, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewLoadError(rawURL, "fetch", fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := readLimited(resp.Body, opts.maxBytes())
	if err != nil {
		return nil, NewLoadError(rawURL, "read", err)
	}

	name := path.Base(req.URL.Path)
	if name == "/" || name == "." {
		name = req.URL.Host
	}
	wb, err := parseBytes(name, data, opts)
	if err != nil {
		return nil, NewLoadError(rawURL, "parse", err)
	}
	return wb, nil
}

// LoadFile reads and parses a workbook from disk.
func LoadFile(filePath string, opts Options) (*models.Workbook, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewLoadError(filePath, "read", fmt.Errorf("%w: %s", ErrFileNotFound, filePath))
		}
		return nil, NewLoadError(filePath, "read", err)
	}
	defer f.Close()

	data, err := readLimited(f, opts.maxBytes())
	if err != nil {
		return nil, NewLoadError(filePath, "read", err)
	}

	wb, err := parseBytes(filepath.Base(filePath), data, opts)
	if err != nil {
		return nil, NewLoadError(filePath, "parse", err)
	}
	return wb, nil
}

// LoadReader parses a workbook from r. name selects the format by extension
// and becomes the workbook name.
func LoadReader(name string, r io.Reader, opts Options) (*models.Workbook, error) {
	data, err := readLimited(r, opts.maxBytes())
	if err != nil {
		return nil, NewLoadError(name, "read", err)
	}
	wb, err := parseBytes(name, data, opts)
	if err != nil {
		return nil, NewLoadError(name, "parse", err)
	}
	return wb, nil
}

// readLimited reads all of r, failing with ErrTooLarge past limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return data, nil
}

// parseBytes decodes data and builds the workbook.
func parseBytes(name string, data []byte, opts Options) (*models.Workbook, error) {
	var (
		grids []parser.SheetGrid
		err   error
	)

	switch detectKind(name, data) {
	case "xlsx":
		grids, err = parser.ReadXLSX(bytes.NewReader(data))
	case "xls":
		grids, err = parser.ReadXLS(bytes.NewReader(data))
	case "csv":
		grids, err = parser.ReadCSV(bytes.NewReader(data), strings.TrimSuffix(name, filepath.Ext(name)))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, err
	}

	wb := models.NewWorkbook(name)
	for _, g := range grids {
		if !opts.wantSheet(g.Name) {
			continue
		}
		ds := parser.BuildDataset(g)
		wb.AddSheet(g.Name, ds)
		wb.Info = append(wb.Info, sheetInfo(g, ds))
	}
	return wb, nil
}

// detectKind picks a decoder by extension, then by magic bytes.
func detectKind(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return "xlsx"
	case ".xls":
		return "xls"
	case ".csv":
		return "csv"
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return "xlsx"
	case bytes.HasPrefix(data, oleMagic):
		return "xls"
	}
	return ""
}

func sheetInfo(g parser.SheetGrid, ds *models.Dataset) models.SheetInfo {
	info := models.SheetInfo{
		Name:    g.Name,
		Rows:    ds.Len(),
		Columns: len(ds.Columns),
	}
	if b, ok := parser.FindDataBounds(g.Rows); ok {
		info.Ref = b.Ref()
		info.Cells = parser.CountNonEmptyCells(g.Rows, b)
	}
	return info
}
