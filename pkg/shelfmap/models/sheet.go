package models

// Sheet represents the first worksheet of a workbook as plain text cells.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Headers holds the first row.
	Headers []string `json:"headers"`
	// Rows holds the data rows after the header, possibly ragged.
	Rows [][]string `json:"rows"`
}

// Cell returns the cell at (row, col) of the data rows, or "" when out of range.
func (s Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][col]
}
