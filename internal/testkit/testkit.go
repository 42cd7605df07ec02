// Package testkit writes spreadsheet and CSV fixtures for tests.
package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX saves rows to an .xlsx file at path, first row first, on the
// workbook's default sheet.
func WriteXLSX(t testing.TB, path string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WideSheet is a small wide-format sheet: two shelf units with three levels.
func WideSheet() [][]any {
	return [][]any{
		{"Estantería", "ANAQUEL 1", "ANAQUEL 2", "ANAQUEL 3"},
		{"Estantería 1", "000 - 001.9", "002 - 002.9", ""},
		{"Estantería 2", "3 - 4", "005 - 004.1", "sin datos"},
	}
}

// LongSheet is a small long-format sheet with accented headers.
func LongSheet() [][]any {
	return [][]any{
		{"RangoInicio", "RangoFin", "Pasillo", "Lado", "Estantería", "Anaquel"},
		{100.0, 199.99, "1", "L", 1, 1},
		{200.0, 299.99, "1", "", 1, 2},
		{"x", 399.0, "2", "R", 2, 1},
		{400.0, 499.0, "2", "R", 2, 3},
	}
}
