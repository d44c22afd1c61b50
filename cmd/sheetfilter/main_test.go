package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const peopleCSV = `Id,Name,Email
1,Ann,ann@example.com
2,,bob@example.com
,Cid,cid@example.com
4,Dee,
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte(peopleCSV), 0644); err != nil {
		t.Fatalf("Failed to write csv: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSheetsCommand(t *testing.T) {
	out, err := execute(t, "sheets", writeCSV(t))
	if err != nil {
		t.Fatalf("sheets failed: %v", err)
	}
	if !strings.Contains(out, `"people"`) {
		t.Errorf("output = %s, expected sheet name people", out)
	}
}

func TestFilterCommandExports(t *testing.T) {
	src := writeCSV(t)
	dir := t.TempDir()

	out, err := execute(t, "filter", src,
		"--primary", "Id", "--columns", "Name,Email",
		"--format", "csv", "--filename", "kept", "--out-dir", dir)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if !strings.Contains(out, "wrote 1 row(s)") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "kept.csv"))
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	expected := "Id,Name,Email\n1,Ann,ann@example.com\n"
	if string(data) != expected {
		t.Errorf("export = %q, expected %q", data, expected)
	}
}

func TestFilterCommandPrint(t *testing.T) {
	out, err := execute(t, "filter", writeCSV(t),
		"--primary", "Id", "--columns", "Name,Email", "--mode", "or", "--test", "null", "--print")
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if !strings.Contains(out, "bob@example.com") || !strings.Contains(out, "Dee") {
		t.Errorf("output missing matching rows:\n%s", out)
	}
	if strings.Contains(out, "Ann") || strings.Contains(out, "Cid") {
		t.Errorf("output contains excluded rows:\n%s", out)
	}
}

func TestFilterCommandRequiresColumns(t *testing.T) {
	_, err := execute(t, "filter", writeCSV(t), "--primary", "Id")
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestShowCommandJSON(t *testing.T) {
	out, err := execute(t, "show", writeCSV(t), "--json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, `"columns":["Id","Name","Email"]`) {
		t.Errorf("output = %s", out)
	}
}

func TestMissingSource(t *testing.T) {
	t.Setenv("SHEETFILTER_SOURCE", "")
	if _, err := execute(t, "sheets"); err == nil {
		t.Error("expected error without a source")
	}
}
