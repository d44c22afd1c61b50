package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// ToJSON serializes a dataset to JSON.
func ToJSON(ds *models.Dataset, pretty bool) ([]byte, error) {
	if ds == nil {
		ds = models.NewDataset()
	}
	return marshal(ds, pretty)
}

// WorkbookToJSON serializes workbook metadata (name, sheet names and per-sheet
// summaries) to JSON.
func WorkbookToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
