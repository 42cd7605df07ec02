// Package models defines data structures for shelf location lookup.
package models

// LocationRecord represents one Dewey range assigned to a physical shelf position.
type LocationRecord struct {
	// Aisle is the aisle label (empty if unknown).
	Aisle string `json:"aisle"`
	// Side is the aisle side label, "A" when unspecified.
	Side string `json:"side"`
	// ShelfUnit is the shelf unit number (1-based).
	ShelfUnit int `json:"shelfUnit"`
	// ShelfLevel is the shelf level within the unit (1-based).
	ShelfLevel int `json:"shelfLevel"`
	// RangeStart is the lower bound of the Dewey range (inclusive).
	RangeStart float64 `json:"rangeStart"`
	// RangeEnd is the upper bound of the Dewey range (inclusive, >= RangeStart).
	RangeEnd float64 `json:"rangeEnd"`
	// RawText is the original cell text the range was parsed from.
	RawText string `json:"rawText"`
	// ExcelRow is the 0-based data row index in the source sheet.
	ExcelRow int `json:"excelRow"`
}

// Contains reports whether q lies within the record's range widened by eps on both bounds.
func (r LocationRecord) Contains(q, eps float64) bool {
	return r.RangeStart-eps <= q && q <= r.RangeEnd+eps
}

// Key returns the overlay key for the record's position.
func (r LocationRecord) Key() OverlayKey {
	return NewOverlayKey(r.Aisle, r.Side, r.ShelfUnit, r.ShelfLevel)
}
