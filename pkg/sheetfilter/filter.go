package sheetfilter

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// ParseCriteria builds filter criteria from raw form input.
// columns is a comma separated list; blank entries and repeats are dropped.
// combine and test default to "and" and "not-null" when blank.
func ParseCriteria(primary, columns, combine, test string) (models.FilterCriteria, error) {
	c := models.FilterCriteria{
		Primary: strings.TrimSpace(primary),
		Columns: SplitColumns(columns),
	}
	if c.Primary == "" || len(c.Columns) == 0 {
		return models.FilterCriteria{}, NewValidationError("", MissingInputMessage)
	}

	switch models.CombineMode(strings.ToLower(strings.TrimSpace(combine))) {
	case models.CombineAnd, "":
		c.Combine = models.CombineAnd
	case models.CombineOr:
		c.Combine = models.CombineOr
	default:
		return models.FilterCriteria{}, NewValidationError("operation-type",
			fmt.Sprintf("unknown operation type %q (must be and or or)", combine))
	}

	switch models.NullTest(strings.ToLower(strings.TrimSpace(test))) {
	case models.TestNotNull, "":
		c.Test = models.TestNotNull
	case models.TestNull:
		c.Test = models.TestNull
	default:
		return models.FilterCriteria{}, NewValidationError("operation",
			fmt.Sprintf("unknown operation %q (must be null or not-null)", test))
	}

	return c, nil
}

// SplitColumns splits a comma separated column list, trimming each name.
func SplitColumns(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Filter returns the rows of ds whose primary column is non-empty and whose
// operation columns satisfy the null test under the combine mode. Passing
// rows are projected to the primary column followed by the operation
// columns, with empty operation cells replaced by NULL. ds is not modified.
func Filter(ds *models.Dataset, c models.FilterCriteria) (*models.Dataset, error) {
	if c.Primary == "" || len(c.Columns) == 0 {
		return nil, NewValidationError("", MissingInputMessage)
	}
	if ds == nil {
		return nil, ErrNoSheetLoaded
	}

	var unknown []string
	for _, col := range c.Projection() {
		if !ds.HasColumn(col) {
			unknown = append(unknown, col)
		}
	}
	if len(unknown) > 0 {
		return nil, unknownColumnsError(unknown)
	}

	header := c.Projection()
	out := models.NewDataset(header...)
	for _, row := range ds.Rows {
		if !Matches(row, c) {
			continue
		}
		projected := make(models.Row, len(header))
		projected[c.Primary] = row.Get(c.Primary)
		for _, col := range header[1:] {
			projected[col] = row.Get(col).OrNull()
		}
		out.Append(projected)
	}

	return out, nil
}

// Matches reports whether row passes criteria c.
func Matches(row models.Row, c models.FilterCriteria) bool {
	if row.Get(c.Primary).IsEmpty() {
		return false
	}

	wantEmpty := c.Test == models.TestNull
	switch c.Combine {
	case models.CombineOr:
		for _, col := range c.Columns {
			if row.Get(col).IsEmpty() == wantEmpty {
				return true
			}
		}
		return false
	default:
		for _, col := range c.Columns {
			if row.Get(col).IsEmpty() != wantEmpty {
				return false
			}
		}
		return true
	}
}
