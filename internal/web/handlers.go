package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/output"
)

// pageData is the view model of the index template.
type pageData struct {
	BookName        string
	Status          string
	Alert           string
	Table           template.HTML
	FirstSheet      string
	SubSheets       []string
	Active          string
	DropdownEnabled bool

	Primary string
	Columns string
	Combine string
	Test    string
}

// session returns the caller's session, opening the workbook in it once the
// background load is done.
func (a *App) session(w http.ResponseWriter, r *http.Request) *sheetfilter.Session {
	sess := a.sessions.fromRequest(w, r)
	if !sess.Loaded() {
		if wb, state := a.loader.Workbook(); state == stateReady {
			if err := sess.Open(wb); err != nil {
				a.log.Warn("Cannot open workbook %q: %v", wb.Name, err)
			}
		}
	}
	return sess
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	a.renderPage(w, http.StatusOK, a.newPageData(sess))
}

func (a *App) handleSelectSheet(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	name := r.URL.Query().Get("name")
	if active, err := sess.SelectSheet(name); err == nil {
		a.log.Debug("Selected sheet %q (requested %q)", active, name)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := a.newPageData(sess)
	data.Primary = r.PostForm.Get("primary-column")
	data.Columns = r.PostForm.Get("operation-columns")
	data.Combine = r.PostForm.Get("operation-type")
	data.Test = r.PostForm.Get("operation")

	c, err := sheetfilter.ParseCriteria(data.Primary, data.Columns, data.Combine, data.Test)
	if err == nil {
		_, err = sess.ApplyFilter(c)
	}
	if err != nil {
		status := http.StatusInternalServerError
		var ve *sheetfilter.ValidationError
		switch {
		case errors.As(err, &ve):
			status = http.StatusBadRequest
			data.Alert = ve.Message
		case errors.Is(err, sheetfilter.ErrNoSheetLoaded):
			status = http.StatusConflict
			data.Alert = "No sheet is loaded yet."
		default:
			a.log.Error("Filter failed: %v", err)
			data.Alert = "Filtering failed."
		}
		a.renderPage(w, status, data)
		return
	}

	a.log.Debug("Filter %+v kept %d row(s)", c, sess.Filtered().Len())
	fresh := a.newPageData(sess)
	fresh.Primary, fresh.Columns, fresh.Combine, fresh.Test = data.Primary, data.Columns, data.Combine, data.Test
	a.renderPage(w, http.StatusOK, fresh)
}

func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	_ = sess.ResetFilter()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// responseSink writes an export as a file attachment.
type responseSink struct {
	w      http.ResponseWriter
	format sheetfilter.Format
}

func (s responseSink) WriteFile(name string, data []byte) error {
	h := s.w.Header()
	h.Set("Content-Type", s.format.ContentType())
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	s.w.WriteHeader(http.StatusOK)
	_, err := s.w.Write(data)
	return err
}

func (a *App) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	formatValue := r.PostForm.Get("file-format")
	if formatValue == "" {
		formatValue = string(sheetfilter.FormatXLSX)
	}
	format, err := sheetfilter.ParseFormat(formatValue)
	if err != nil {
		data := a.newPageData(sess)
		data.Alert = fmt.Sprintf("Unsupported file format %q.", formatValue)
		a.renderPage(w, http.StatusBadRequest, data)
		return
	}

	name, err := sess.Download(responseSink{w: w, format: format}, r.PostForm.Get("filename"), format)
	if err != nil {
		if errors.Is(err, sheetfilter.ErrNoSheetLoaded) {
			data := a.newPageData(sess)
			data.Alert = "No sheet is loaded yet."
			a.renderPage(w, http.StatusConflict, data)
			return
		}
		a.log.Error("Download failed: %v", err)
		return
	}
	a.log.Debug("Sent %s", name)
}

func (a *App) handleSheetsJSON(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	wb := sess.Workbook()
	if wb == nil {
		a.writeJSONError(w, http.StatusServiceUnavailable, a.statusText())
		return
	}
	body, err := output.WorkbookToJSON(wb, false)
	if err != nil {
		a.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("X-Active-Sheet", sess.ActiveSheet())
	a.writeJSON(w, http.StatusOK, body)
}

func (a *App) handleDataJSON(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	if !sess.Loaded() {
		a.writeJSONError(w, http.StatusServiceUnavailable, a.statusText())
		return
	}
	body, err := output.ToJSON(sess.Filtered(), false)
	if err != nil {
		a.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("X-Active-Sheet", sess.ActiveSheet())
	a.writeJSON(w, http.StatusOK, body)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, state := a.loader.Workbook()
	body, _ := json.Marshal(map[string]interface{}{
		"status":   "ok",
		"workbook": state.String(),
		"sessions": a.sessions.len(),
	})
	a.writeJSON(w, http.StatusOK, body)
}

func (a *App) newPageData(sess *sheetfilter.Session) pageData {
	data := pageData{
		Status:  a.statusText(),
		Combine: "and",
		Test:    "null",
	}
	if c, ok := sess.Criteria(); ok {
		data.Primary = c.Primary
		data.Columns = strings.Join(c.Columns, ", ")
		data.Combine = string(c.Combine)
		data.Test = string(c.Test)
	}

	if wb := sess.Workbook(); wb != nil {
		data.BookName = wb.Name
		data.FirstSheet = wb.FirstSheet()
		data.SubSheets = sess.SubSheets()
		data.Active = sess.ActiveSheet()
		data.DropdownEnabled = len(data.SubSheets) > 0
		data.Status = fmt.Sprintf("Sheet %q: %d row(s) shown", data.Active, sess.Filtered().Len())
	}

	table, err := output.HTMLTable(sess.Filtered())
	if err != nil {
		a.log.Error("Render table: %v", err)
	}
	data.Table = table
	return data
}

func (a *App) statusText() string {
	switch _, state := a.loader.Workbook(); state {
	case stateLoading:
		return "Loading workbook…"
	case stateFailed:
		return "Workbook could not be loaded."
	default:
		return "No workbook loaded."
	}
}

// renderPage renders to a buffer first so template errors do not leave a
// half-written response.
func (a *App) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, "index", data); err != nil {
		a.log.Error("Template error: %v", err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.log.Warn("Error writing response: %v", err)
	}
}

func (a *App) writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (a *App) writeJSONError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	a.writeJSON(w, status, body)
}
