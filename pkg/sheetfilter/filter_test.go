package sheetfilter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// sampleDataset is [{A:1,B:null},{A:2,B:3},{A:null,B:4}].
func sampleDataset() *models.Dataset {
	ds := models.NewDataset("A", "B")
	ds.Append(models.Row{"A": models.NumberCell(1, ""), "B": models.NullCell()})
	ds.Append(models.Row{"A": models.NumberCell(2, ""), "B": models.NumberCell(3, "")})
	ds.Append(models.Row{"A": models.NullCell(), "B": models.NumberCell(4, "")})
	return ds
}

func displayRows(ds *models.Dataset) [][]string {
	out := make([][]string, ds.Len())
	for i := range ds.Rows {
		out[i] = ds.DisplayValues(i)
	}
	return out
}

func TestFilterNotNull(t *testing.T) {
	ds := sampleDataset()
	c := models.FilterCriteria{Primary: "A", Columns: []string{"B"}, Combine: models.CombineAnd, Test: models.TestNotNull}

	out, err := Filter(ds, c)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	want := [][]string{{"2", "3"}}
	if got := displayRows(out); !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %v, expected %v", got, want)
	}
}

func TestFilterNull(t *testing.T) {
	ds := sampleDataset()
	c := models.FilterCriteria{Primary: "A", Columns: []string{"B"}, Combine: models.CombineAnd, Test: models.TestNull}

	out, err := Filter(ds, c)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if out.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", out.Len())
	}
	if got := out.Rows[0].Get("B"); got.Kind != models.KindString || got.Str != models.NullText {
		t.Errorf("Expected B to be the NULL string, got %+v", got)
	}
	if got := out.Rows[0].Get("A"); got.Kind != models.KindNumber || got.Num != 1 {
		t.Errorf("Expected primary value unchanged, got %+v", got)
	}
}

func TestFilterCombineModes(t *testing.T) {
	ds := models.NewDataset("id", "x", "y", "z")
	ds.Append(models.Row{"id": models.StringCell("r1"), "x": models.StringCell("1"), "y": models.StringCell(""), "z": models.NullCell()})
	ds.Append(models.Row{"id": models.StringCell("r2"), "x": models.StringCell("1"), "y": models.StringCell("2"), "z": models.NullCell()})
	ds.Append(models.Row{"id": models.StringCell("r3"), "x": models.NullCell(), "y": models.NullCell(), "z": models.NullCell()})
	ds.Append(models.Row{"id": models.StringCell(""), "x": models.StringCell("1"), "y": models.StringCell("1"), "z": models.StringCell("1")})

	tests := []struct {
		name    string
		combine models.CombineMode
		test    models.NullTest
		ids     []string
	}{
		{"and not-null", models.CombineAnd, models.TestNotNull, []string{"r2"}},
		{"or not-null", models.CombineOr, models.TestNotNull, []string{"r1", "r2"}},
		{"and null", models.CombineAnd, models.TestNull, []string{"r3"}},
		{"or null", models.CombineOr, models.TestNull, []string{"r1", "r3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.FilterCriteria{Primary: "id", Columns: []string{"x", "y"}, Combine: tt.combine, Test: tt.test}
			out, err := Filter(ds, c)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			var ids []string
			for _, r := range out.Rows {
				ids = append(ids, r.Get("id").Text())
			}
			if !reflect.DeepEqual(ids, tt.ids) {
				t.Errorf("ids = %v, expected %v", ids, tt.ids)
			}
		})
	}
}

func TestFilterProjection(t *testing.T) {
	ds := models.NewDataset("id", "a", "b", "c")
	ds.Append(models.Row{"id": models.StringCell("1"), "a": models.StringCell(""), "b": models.StringCell("keep"), "c": models.StringCell("drop")})

	c := models.FilterCriteria{Primary: "id", Columns: []string{"b", "id", "a"}, Combine: models.CombineOr, Test: models.TestNotNull}
	out, err := Filter(ds, c)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if want := []string{"id", "b", "a"}; !reflect.DeepEqual(out.Columns, want) {
		t.Errorf("Columns = %v, expected %v", out.Columns, want)
	}
	for _, r := range out.Rows {
		if _, ok := r["c"]; ok {
			t.Error("Expected column c to be projected away")
		}
	}
	if got := out.DisplayValues(0); !reflect.DeepEqual(got, []string{"1", "keep", "NULL"}) {
		t.Errorf("Row = %v", got)
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	ds := sampleDataset()
	before := ds.Clone()
	c := models.FilterCriteria{Primary: "A", Columns: []string{"B"}, Combine: models.CombineAnd, Test: models.TestNull}

	first, err := Filter(ds, c)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	second, err := Filter(ds, c)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if !reflect.DeepEqual(ds, before) {
		t.Error("Filter modified its input")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Filter is not idempotent")
	}
}

func TestFilterUnknownColumn(t *testing.T) {
	c := models.FilterCriteria{Primary: "A", Columns: []string{"B", "Q"}, Combine: models.CombineAnd, Test: models.TestNull}
	_, err := Filter(sampleDataset(), c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if ve.Message != "Unknown column(s): Q" {
		t.Errorf("Message = %q", ve.Message)
	}
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("  A ", " B, ,C,B ", "OR", "null")
	if err != nil {
		t.Fatalf("ParseCriteria failed: %v", err)
	}
	want := models.FilterCriteria{Primary: "A", Columns: []string{"B", "C"}, Combine: models.CombineOr, Test: models.TestNull}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("ParseCriteria = %+v, expected %+v", c, want)
	}

	tests := []struct {
		primary, columns, combine, test string
	}{
		{"", "B", "and", "null"},
		{"A", "", "and", "null"},
		{"A", " , ", "and", "null"},
		{"A", "B", "xor", "null"},
		{"A", "B", "and", "maybe"},
	}
	for _, tt := range tests {
		if _, err := ParseCriteria(tt.primary, tt.columns, tt.combine, tt.test); !IsValidation(err) {
			t.Errorf("ParseCriteria(%q, %q, %q, %q) error = %v, expected validation error",
				tt.primary, tt.columns, tt.combine, tt.test, err)
		}
	}

	_, err = ParseCriteria("A", "", "and", "null")
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != MissingInputMessage {
		t.Errorf("Message = %q, expected %q", ve.Message, MissingInputMessage)
	}
}
