package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
)

// Default enumeration used when no assignment file exists.
const (
	generatedAisles  = 8
	generatedShelves = 6
)

var generatedSides = []string{"L", "R"}

// Assignment places one wide-format sheet row at an aisle, side and shelf unit.
type Assignment struct {
	// ExcelRow is the 0-based data row index in the sheet.
	ExcelRow  int
	Aisle     string
	Side      string
	ShelfUnit int
}

var assignmentHeader = []string{"excel_row_index", "pasillo", "lado", "estanteria"}

// LoadAssignments reads an assignment CSV. Rows without a valid row index or
// shelf unit are skipped.
func LoadAssignments(path string) ([]Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, err
	}
	var out []Assignment
	for _, row := range rows {
		excelRow, ok := ToInt(row.get("excelrowindex"))
		if !ok || excelRow < 0 {
			continue
		}
		unit, ok := ToInt(row.get("estanteria"))
		if !ok {
			continue
		}
		out = append(out, Assignment{
			ExcelRow:  excelRow,
			Aisle:     numericLabel(row.get("pasillo")),
			Side:      row.get("lado"),
			ShelfUnit: unit,
		})
	}
	return out, nil
}

// numericLabel renders "3.0" as "3" and leaves other labels alone.
func numericLabel(label string) string {
	if f, ok := ToFloat(label); ok && f == float64(int(f)) {
		return strconv.Itoa(int(f))
	}
	return label
}

// GenerateAssignments enumerates aisles 1-8, sides L and R, and shelves 1-6
// in that nesting order, assigning one sheet row each until rows are exhausted.
func GenerateAssignments(rows int) []Assignment {
	var out []Assignment
	for aisle := 1; aisle <= generatedAisles; aisle++ {
		for _, side := range generatedSides {
			for shelf := 1; shelf <= generatedShelves; shelf++ {
				if len(out) >= rows {
					return out
				}
				out = append(out, Assignment{
					ExcelRow:  len(out),
					Aisle:     strconv.Itoa(aisle),
					Side:      side,
					ShelfUnit: shelf,
				})
			}
		}
	}
	return out
}

// WriteAssignments writes assignments as CSV, creating parent directories.
func WriteAssignments(path string, assignments []Assignment) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w := csv.NewWriter(f)
	if err := w.Write(assignmentHeader); err != nil {
		return err
	}
	for _, a := range assignments {
		if err := w.Write([]string{
			strconv.Itoa(a.ExcelRow),
			a.Aisle,
			a.Side,
			strconv.Itoa(a.ShelfUnit),
		}); err != nil {
			return fmt.Errorf("write row %d: %w", a.ExcelRow, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ApplyAssignments relocates wide-format records to the aisle, side and shelf
// unit assigned to their sheet row. Records whose row has no assignment are
// dropped. When a row index is assigned twice the first assignment wins.
// A blank side falls back to models.DefaultSide.
func ApplyAssignments(table models.LocationTable, assignments []Assignment) models.LocationTable {
	byRow := make(map[int]Assignment, len(assignments))
	for _, a := range assignments {
		if _, ok := byRow[a.ExcelRow]; !ok {
			byRow[a.ExcelRow] = a
		}
	}

	var rows []models.LocationRecord
	for _, r := range table.Rows {
		a, ok := byRow[r.ExcelRow]
		if !ok {
			continue
		}
		r.Aisle = a.Aisle
		r.Side = strings.TrimSpace(a.Side)
		if r.Side == "" {
			r.Side = models.DefaultSide
		}
		r.ShelfUnit = a.ShelfUnit
		rows = append(rows, r)
	}
	return models.NewLocationTable(table.Format, rows)
}
