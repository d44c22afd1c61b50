package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// TextRenderer renders a dataset as a bordered terminal table.
type TextRenderer struct {
	// MaxRows limits printed rows. Zero prints all rows.
	MaxRows int
	// Color enables header and NULL styling.
	Color bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	nullStyle   = cellStyle.Foreground(lipgloss.Color("241"))
)

// Render writes ds to w.
func (r TextRenderer) Render(w io.Writer, ds *models.Dataset) error {
	if ds.IsEmpty() {
		_, err := io.WriteString(w, EmptyMessage+"\n")
		return err
	}

	n := ds.Len()
	if r.MaxRows > 0 && n > r.MaxRows {
		n = r.MaxRows
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = ds.DisplayValues(i)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(ds.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if !r.Color {
				return cellStyle
			}
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && col < len(rows[row]) && rows[row][col] == models.NullText {
				return nullStyle
			}
			return cellStyle
		})

	out := t.String() + "\n"
	if n < ds.Len() {
		out += lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("… %d more rows", ds.Len()-n)) + "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}
