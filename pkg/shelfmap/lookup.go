package shelfmap

import (
	"slices"
	"strings"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/parser"
)

// Epsilon is the absolute tolerance applied to both range bounds.
const Epsilon = 1e-6

// Filters restrict which records a lookup considers. Zero values disable a filter.
type Filters struct {
	// ShelfUnits restricts to these shelf units when non-empty.
	ShelfUnits []int
	// Aisle requires an exact aisle match when non-empty.
	Aisle string
	// Side requires a case-insensitive side match when non-empty.
	Side string
}

// Allows reports whether r passes every active filter.
func (f Filters) Allows(r models.LocationRecord) bool {
	if len(f.ShelfUnits) > 0 && !slices.Contains(f.ShelfUnits, r.ShelfUnit) {
		return false
	}
	if f.Aisle != "" && r.Aisle != f.Aisle {
		return false
	}
	if f.Side != "" && !strings.EqualFold(strings.TrimSpace(r.Side), strings.TrimSpace(f.Side)) {
		return false
	}
	return true
}

// Match is a successful lookup.
type Match struct {
	Record models.LocationRecord `json:"location"`
	// Overlay is nil when no box is registered for the record's position.
	Overlay *models.AreaOverlay `json:"bbox,omitempty"`
}

// FindLocation returns the first record, in table order, that passes filters
// and whose range contains query within Epsilon. Overlapping ranges resolve
// to the earliest record.
func FindLocation(table models.LocationTable, overlays models.OverlayMap, query float64, filters Filters) (Match, bool) {
	for _, r := range table.Rows {
		if !filters.Allows(r) || !r.Contains(query, Epsilon) {
			continue
		}
		m := Match{Record: r}
		if box, ok := overlays[r.Key()]; ok {
			m.Overlay = &box
		}
		return m, true
	}
	return Match{}, false
}

// FilterTable returns the records passing filters in their original order.
// The maxima of the full table are kept.
func FilterTable(table models.LocationTable, filters Filters) models.LocationTable {
	rows := make([]models.LocationRecord, 0, len(table.Rows))
	for _, r := range table.Rows {
		if filters.Allows(r) {
			rows = append(rows, r)
		}
	}
	return models.LocationTable{
		Format:        table.Format,
		Rows:          rows,
		MaxShelfUnit:  table.MaxShelfUnit,
		MaxShelfLevel: table.MaxShelfLevel,
	}
}

// ParseQuery extracts the Dewey number from free-form query text.
func ParseQuery(text string) (float64, error) {
	q, ok := parser.FirstFloat(text)
	if !ok {
		return 0, ErrInvalidQuery
	}
	return q, nil
}

// ParseShelfUnits parses a comma-separated shelf unit list such as "1, 2,3".
// Tokens without a number are ignored.
func ParseShelfUnits(list string) []int {
	var units []int
	for _, part := range strings.Split(list, ",") {
		token, ok := parser.ExtractFirstNumber(part)
		if !ok {
			continue
		}
		if n, ok := parser.ToInt(token); ok {
			units = append(units, n)
		}
	}
	return units
}
