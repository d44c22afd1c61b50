package sheetfilter

import (
	"bytes"
	"io"
	"sync"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// Renderer draws a dataset as a table.
type Renderer interface {
	Render(w io.Writer, ds *models.Dataset) error
}

// Session holds the workbook a user works on, the rows of the active sheet
// and the current filtered view. The zero value is a session with no sheet
// loaded. A Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	workbook *models.Workbook
	active   string
	data     *models.Dataset
	filtered *models.Dataset
	criteria *models.FilterCriteria
}

// NewSession creates a session with no sheet loaded.
func NewSession() *Session {
	return &Session{}
}

// Open makes wb the session workbook and activates its first sheet.
// A workbook without sheets leaves the session unchanged.
func (s *Session) Open(wb *models.Workbook) error {
	if wb == nil || wb.FirstSheet() == "" {
		return ErrNoSheets
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workbook = wb
	s.selectLocked("")
	return nil
}

// Loaded reports whether a sheet is active.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workbook != nil
}

// SelectSheet activates the named sheet and resets the filtered view to all
// of its rows. An empty or unknown name selects the first sheet. It returns
// the name of the sheet actually activated.
func (s *Session) SelectSheet(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return "", ErrNoSheetLoaded
	}
	return s.selectLocked(name), nil
}

func (s *Session) selectLocked(name string) string {
	ds, ok := s.workbook.Sheet(name)
	if name == "" || !ok {
		name = s.workbook.FirstSheet()
		ds, _ = s.workbook.Sheet(name)
	}
	if ds == nil {
		ds = models.NewDataset()
	}
	s.active = name
	s.data = ds.Clone()
	s.filtered = s.data.Clone()
	s.criteria = nil
	return name
}

// ApplyFilter replaces the filtered view with the rows of the active sheet
// that match c. On error the session is left unchanged.
func (s *Session) ApplyFilter(c models.FilterCriteria) (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return nil, ErrNoSheetLoaded
	}

	out, err := Filter(s.data, c)
	if err != nil {
		return nil, err
	}
	s.filtered = out
	s.criteria = &c
	return out.Clone(), nil
}

// ResetFilter restores the filtered view to every row of the active sheet.
func (s *Session) ResetFilter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook == nil {
		return ErrNoSheetLoaded
	}
	s.filtered = s.data.Clone()
	s.criteria = nil
	return nil
}

// Criteria returns the last applied filter, if any.
func (s *Session) Criteria() (models.FilterCriteria, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.criteria == nil {
		return models.FilterCriteria{}, false
	}
	return *s.criteria, true
}

// ActiveSheet returns the name of the active sheet, or "".
func (s *Session) ActiveSheet() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SheetNames returns every sheet name in workbook order.
func (s *Session) SheetNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workbook == nil {
		return nil
	}
	return append([]string(nil), s.workbook.SheetNames...)
}

// SubSheets returns the sheet names offered for switching: all but the first.
func (s *Session) SubSheets() []string {
	names := s.SheetNames()
	if len(names) <= 1 {
		return nil
	}
	return names[1:]
}

// Workbook returns the session workbook, or nil.
func (s *Session) Workbook() *models.Workbook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workbook
}

// Data returns a copy of the active sheet rows.
func (s *Session) Data() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Filtered returns a copy of the current filtered view.
func (s *Session) Filtered() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered.Clone()
}

// Render draws the filtered view with r.
func (s *Session) Render(r Renderer, w io.Writer) error {
	return r.Render(w, s.Filtered())
}

// Download exports the filtered view and hands it to sink as
// "<filename>.<format>". It returns the file name used.
func (s *Session) Download(sink FileSink, filename string, format Format) (string, error) {
	if !s.Loaded() {
		return "", ErrNoSheetLoaded
	}

	var buf bytes.Buffer
	if err := Export(&buf, s.Filtered(), format); err != nil {
		return "", err
	}
	name := ExportFileName(filename, format)
	if err := sink.WriteFile(name, buf.Bytes()); err != nil {
		return "", err
	}
	return name, nil
}
