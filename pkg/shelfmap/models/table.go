package models

// SheetFormat identifies the spreadsheet shape a table was built from.
type SheetFormat string

const (
	// FormatLong has one row per explicit range with location columns.
	FormatLong SheetFormat = "long"
	// FormatWide has one row per shelf unit and one column per shelf level.
	FormatWide SheetFormat = "wide"
)

// LocationTable is the ordered set of location records loaded from one spreadsheet.
type LocationTable struct {
	// Format is the detected sheet shape.
	Format SheetFormat `json:"format,omitempty"`
	// Rows holds the records in source order.
	Rows []LocationRecord `json:"rows"`
	// MaxShelfUnit is the largest shelf unit observed (0 if no rows).
	MaxShelfUnit int `json:"maxShelfUnit"`
	// MaxShelfLevel is the largest shelf level observed (0 if no rows).
	MaxShelfLevel int `json:"maxShelfLevel"`
}

// NewLocationTable builds a table from rows and computes the maxima.
func NewLocationTable(format SheetFormat, rows []LocationRecord) LocationTable {
	t := LocationTable{Format: format, Rows: rows}
	if t.Rows == nil {
		t.Rows = []LocationRecord{}
	}
	for _, r := range t.Rows {
		if r.ShelfUnit > t.MaxShelfUnit {
			t.MaxShelfUnit = r.ShelfUnit
		}
		if r.ShelfLevel > t.MaxShelfLevel {
			t.MaxShelfLevel = r.ShelfLevel
		}
	}
	return t
}

// Len returns the number of records.
func (t LocationTable) Len() int {
	return len(t.Rows)
}
