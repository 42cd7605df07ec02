package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrNoWorksheet indicates the workbook has no sheets.
var ErrNoWorksheet = errors.New("no worksheet found")

var errNotXLS = errors.New("no workbook stream in xls file")

// ReadSheet reads the first worksheet of an .xlsx or .xls file.
// The first row becomes the headers; the remaining rows are returned as-is.
func ReadSheet(path string) (models.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return readXLS(path)
	default:
		return readXLSX(path)
	}
}

func readXLSX(path string) (models.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Sheet{}, err
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return models.Sheet{}, ErrNoWorksheet
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.Sheet{}, err
	}
	return newSheet(sheetName, rows), nil
}

func readXLS(path string) (sheet models.Sheet, err error) {
	// The BIFF reader panics on some corrupt files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read xls: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return models.Sheet{}, err
	}
	defer func() { _ = f.Close() }()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return models.Sheet{}, err
	}
	if wb == nil {
		return models.Sheet{}, errNotXLS
	}
	if wb.NumSheets() == 0 {
		return models.Sheet{}, ErrNoWorksheet
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return models.Sheet{}, ErrNoWorksheet
	}
	// ReadAllCells spans every sheet and skips sheets with MaxRow 0, so a
	// header-only first sheet is returned empty rather than read past.
	if ws.MaxRow == 0 {
		return models.Sheet{Name: ws.Name}, nil
	}
	rows := wb.ReadAllCells(int(ws.MaxRow) + 1)
	return newSheet(ws.Name, trimTrailingEmptyRows(rows)), nil
}

func newSheet(name string, rows [][]string) models.Sheet {
	sheet := models.Sheet{Name: name}
	if len(rows) == 0 {
		return sheet
	}
	sheet.Headers = rows[0]
	sheet.Rows = rows[1:]
	return sheet
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
