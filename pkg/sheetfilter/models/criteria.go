package models

// CombineMode joins the per-column null tests.
type CombineMode string

const (
	// CombineAnd requires every operation column to pass its test.
	CombineAnd CombineMode = "and"
	// CombineOr requires at least one operation column to pass its test.
	CombineOr CombineMode = "or"
)

// NullTest selects what a passing operation column looks like.
type NullTest string

const (
	// TestNull passes empty cells.
	TestNull NullTest = "null"
	// TestNotNull passes non-empty cells.
	TestNotNull NullTest = "not-null"
)

// FilterCriteria describes one filter request.
type FilterCriteria struct {
	// Primary must be non-empty for a row to be eligible.
	Primary string `json:"primary"`
	// Columns are tested with Test and joined with Combine.
	Columns []string `json:"columns"`
	// Combine is the AND/OR mode.
	Combine CombineMode `json:"combine"`
	// Test is the null / not-null mode.
	Test NullTest `json:"test"`
}

// Projection returns the output header: the primary column followed by the
// operation columns, without repeats.
func (c FilterCriteria) Projection() []string {
	seen := map[string]bool{c.Primary: true}
	out := []string{c.Primary}
	for _, col := range c.Columns {
		if seen[col] {
			continue
		}
		seen[col] = true
		out = append(out, col)
	}
	return out
}
