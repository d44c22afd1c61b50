// Package output renders datasets as HTML, terminal tables and JSON.
package output

import (
	"bytes"
	"html/template"
	"io"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// EmptyMessage is shown instead of a table when there are no rows.
const EmptyMessage = "No data available"

var tableTemplate = template.Must(template.New("table").Parse(
	`{{if .Empty}}<p>{{.Message}}</p>{{else}}<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}`))

type tableView struct {
	Empty   bool
	Message string
	Columns []string
	Rows    [][]string
}

// HTMLRenderer renders a dataset as an HTML table fragment.
type HTMLRenderer struct{}

// Render writes ds as a <table>. Empty cells print NULL; a dataset without
// rows prints a placeholder paragraph.
func (HTMLRenderer) Render(w io.Writer, ds *models.Dataset) error {
	return tableTemplate.Execute(w, newTableView(ds))
}

// HTMLTable renders ds and returns it as trusted HTML for embedding in a page.
func HTMLTable(ds *models.Dataset) (template.HTML, error) {
	var buf bytes.Buffer
	if err := (HTMLRenderer{}).Render(&buf, ds); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func newTableView(ds *models.Dataset) tableView {
	if ds.IsEmpty() {
		return tableView{Empty: true, Message: EmptyMessage}
	}
	v := tableView{
		Columns: ds.Columns,
		Rows:    make([][]string, ds.Len()),
	}
	for i := range ds.Rows {
		v.Rows[i] = ds.DisplayValues(i)
	}
	return v
}
