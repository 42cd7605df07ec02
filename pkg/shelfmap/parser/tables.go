package parser

import (
	"fmt"
	"strings"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
)

// Normalized header names of the long format.
const (
	colRangeStart = "rangoinicio"
	colRangeEnd   = "rangofin"
	colAisle      = "pasillo"
	colSide       = "lado"
	colShelfUnit  = "estanteria"
	colShelfLevel = "anaquel"
)

// shelfLevelToken marks wide-format shelf level columns.
const shelfLevelToken = "ANAQUEL"

// Wide-format fallback shelf level columns (0-based, end exclusive).
const (
	fallbackLevelFirst = 1
	fallbackLevelLast  = 6
)

// longColumns holds column indices of a long-format sheet.
type longColumns struct {
	start, end, aisle, side, unit, level int
}

// DetectFormat reports the sheet shape from its headers. A sheet is long
// when all long-format columns are present, wide otherwise.
func DetectFormat(headers []string) models.SheetFormat {
	if _, ok := detectLongColumns(headers); ok {
		return models.FormatLong
	}
	return models.FormatWide
}

func detectLongColumns(headers []string) (longColumns, bool) {
	idx := headerIndex(headers)
	var cols longColumns
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{colRangeStart, &cols.start},
		{colRangeEnd, &cols.end},
		{colAisle, &cols.aisle},
		{colSide, &cols.side},
		{colShelfUnit, &cols.unit},
		{colShelfLevel, &cols.level},
	} {
		i, ok := idx[c.name]
		if !ok {
			return longColumns{}, false
		}
		*c.dst = i
	}
	return cols, true
}

// BuildTable converts a sheet into a location table. Rows and cells that do
// not yield a usable range are skipped.
func BuildTable(sheet models.Sheet) models.LocationTable {
	if cols, ok := detectLongColumns(sheet.Headers); ok {
		return models.NewLocationTable(models.FormatLong, buildLong(sheet, cols))
	}
	return models.NewLocationTable(models.FormatWide, buildWide(sheet))
}

func buildLong(sheet models.Sheet, cols longColumns) []models.LocationRecord {
	var records []models.LocationRecord
	for i := range sheet.Rows {
		startText := strings.TrimSpace(sheet.Cell(i, cols.start))
		endText := strings.TrimSpace(sheet.Cell(i, cols.end))

		start, ok := ToFloat(startText)
		if !ok {
			continue
		}
		end, ok := ToFloat(endText)
		if !ok {
			continue
		}
		unit, ok := ToInt(sheet.Cell(i, cols.unit))
		if !ok || unit < 1 {
			continue
		}
		level, ok := ToInt(sheet.Cell(i, cols.level))
		if !ok || level < 1 {
			continue
		}
		if start > end {
			start, end = end, start
		}

		side := strings.TrimSpace(sheet.Cell(i, cols.side))
		if side == "" {
			side = models.DefaultSide
		}
		records = append(records, models.LocationRecord{
			Aisle:      strings.TrimSpace(sheet.Cell(i, cols.aisle)),
			Side:       side,
			ShelfUnit:  unit,
			ShelfLevel: level,
			RangeStart: start,
			RangeEnd:   end,
			RawText:    fmt.Sprintf("%s - %s", startText, endText),
			ExcelRow:   i,
		})
	}
	return records
}

func buildWide(sheet models.Sheet) []models.LocationRecord {
	levelCols := shelfLevelColumns(sheet)

	var records []models.LocationRecord
	for i := range sheet.Rows {
		unit := shelfUnitNumber(sheet.Cell(i, 0), i+1)
		for level, col := range levelCols {
			cell := ParseRangeCell(sheet.Cell(i, col))
			if !cell.Complete() {
				continue
			}
			records = append(records, models.LocationRecord{
				Aisle:      "",
				Side:       models.DefaultSide,
				ShelfUnit:  unit,
				ShelfLevel: level + 1,
				RangeStart: *cell.Start,
				RangeEnd:   *cell.End,
				RawText:    cell.Raw,
				ExcelRow:   i,
			})
		}
	}
	return records
}

// shelfLevelColumns returns the column indices holding shelf levels, in order.
func shelfLevelColumns(sheet models.Sheet) []int {
	var cols []int
	for i, h := range sheet.Headers {
		if strings.Contains(strings.ToUpper(h), shelfLevelToken) {
			cols = append(cols, i)
		}
	}
	if len(cols) > 0 {
		return cols
	}

	width := len(sheet.Headers)
	for _, row := range sheet.Rows {
		width = max(width, len(row))
	}
	for i := fallbackLevelFirst; i < fallbackLevelLast && i < width; i++ {
		cols = append(cols, i)
	}
	return cols
}

// shelfUnitNumber extracts the shelf unit from a label such as "Estantería 3",
// falling back to ordinal when the label has no positive number.
func shelfUnitNumber(label string, ordinal int) int {
	token, ok := ExtractFirstNumber(label)
	if !ok {
		return ordinal
	}
	unit, ok := ToInt(token)
	if !ok || unit < 1 {
		return ordinal
	}
	return unit
}
