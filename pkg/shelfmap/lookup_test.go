package shelfmap

import (
	"testing"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() models.LocationTable {
	return models.NewLocationTable(models.FormatLong, []models.LocationRecord{
		{Aisle: "1", Side: "L", ShelfUnit: 1, ShelfLevel: 1, RangeStart: 0, RangeEnd: 99.99},
		{Aisle: "1", Side: "R", ShelfUnit: 2, ShelfLevel: 1, RangeStart: 100, RangeEnd: 199.99},
		{Aisle: "2", Side: "L", ShelfUnit: 3, ShelfLevel: 2, RangeStart: 150, RangeEnd: 250},
		{Aisle: "", Side: "A", ShelfUnit: 2, ShelfLevel: 1, RangeStart: 3, RangeEnd: 4},
	})
}

func TestFindLocationScenario(t *testing.T) {
	table := models.NewLocationTable(models.FormatWide, []models.LocationRecord{
		{Aisle: "", Side: "A", ShelfUnit: 2, ShelfLevel: 1, RangeStart: 3, RangeEnd: 4, RawText: "3 - 4"},
	})

	m, ok := FindLocation(table, models.OverlayMap{}, 3.5, Filters{})
	require.True(t, ok)
	assert.Equal(t, table.Rows[0], m.Record)
	assert.Nil(t, m.Overlay)

	overlays := models.OverlayMap{
		models.NewOverlayKey("", "A", 2, 1): {X0: 1, Y0: 2, X1: 3, Y1: 4},
	}
	m, ok = FindLocation(table, overlays, 3.5, Filters{})
	require.True(t, ok)
	require.NotNil(t, m.Overlay)
	assert.Equal(t, models.AreaOverlay{X0: 1, Y0: 2, X1: 3, Y1: 4}, *m.Overlay)
}

func TestFindLocationFirstMatchWins(t *testing.T) {
	table := sampleTable()

	m, ok := FindLocation(table, nil, 175, Filters{})
	require.True(t, ok)
	assert.Equal(t, 2, m.Record.ShelfUnit, "overlapping ranges resolve to the earliest record")

	m, ok = FindLocation(table, nil, 3.5, Filters{})
	require.True(t, ok)
	assert.Equal(t, "1", m.Record.Aisle, "range [0, 99.99] precedes [3, 4]")
}

func TestFindLocationEpsilon(t *testing.T) {
	table := sampleTable()

	_, ok := FindLocation(table, nil, 99.99+5e-7, Filters{})
	assert.True(t, ok)
	_, ok = FindLocation(table, nil, -5e-7, Filters{})
	assert.True(t, ok)
	_, ok = FindLocation(table, nil, 300, Filters{})
	assert.False(t, ok)
	_, ok = FindLocation(table, nil, -1e-5, Filters{})
	assert.False(t, ok)
}

func TestFindLocationFilters(t *testing.T) {
	table := sampleTable()
	tests := []struct {
		name    string
		query   float64
		filters Filters
		aisle   string
		unit    int
		found   bool
	}{
		{"shelf units", 175, Filters{ShelfUnits: []int{3}}, "2", 3, true},
		{"shelf units miss", 175, Filters{ShelfUnits: []int{1}}, "", 0, false},
		{"aisle exact", 175, Filters{Aisle: "2"}, "2", 3, true},
		{"aisle no trim or fold", 175, Filters{Aisle: "2 "}, "", 0, false},
		{"side case-insensitive", 175, Filters{Side: "l"}, "2", 3, true},
		{"combined", 3.5, Filters{ShelfUnits: []int{2}, Side: "a"}, "", 2, true},
		{"combined miss", 3.5, Filters{ShelfUnits: []int{2}, Side: "a", Aisle: "1"}, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := FindLocation(table, nil, tt.query, tt.filters)
			require.Equal(t, tt.found, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.aisle, m.Record.Aisle)
			assert.Equal(t, tt.unit, m.Record.ShelfUnit)
			assert.True(t, m.Record.Contains(tt.query, Epsilon))
		})
	}
}

func TestFindLocationReturnsFirstQualifying(t *testing.T) {
	table := sampleTable()
	filters := Filters{Side: "L"}
	for _, q := range []float64{0, 50, 99.99, 100, 150, 175, 200, 250, 3.5, 1000} {
		m, ok := FindLocation(table, nil, q, filters)

		var want *models.LocationRecord
		for i := range table.Rows {
			r := table.Rows[i]
			if filters.Allows(r) && r.RangeStart-Epsilon <= q && q <= r.RangeEnd+Epsilon {
				want = &r
				break
			}
		}
		if want == nil {
			assert.False(t, ok, "query %v", q)
			continue
		}
		require.True(t, ok, "query %v", q)
		assert.Equal(t, *want, m.Record, "query %v", q)
	}
}

func TestFilterTable(t *testing.T) {
	table := sampleTable()

	filtered := FilterTable(table, Filters{ShelfUnits: []int{2}})
	require.Len(t, filtered.Rows, 2)
	assert.Equal(t, table.Rows[1], filtered.Rows[0])
	assert.Equal(t, table.Rows[3], filtered.Rows[1])
	assert.Equal(t, table.MaxShelfUnit, filtered.MaxShelfUnit)
	assert.Equal(t, table.MaxShelfLevel, filtered.MaxShelfLevel)

	assert.Equal(t, table.Rows, FilterTable(table, Filters{}).Rows)
	assert.Empty(t, FilterTable(table, Filters{Aisle: "9"}).Rows)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("Dewey 3,5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, q)

	_, err = ParseQuery("abc")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseShelfUnits(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ParseShelfUnits("1, 2,3"))
	assert.Equal(t, []int{4, 6}, ParseShelfUnits("4,x,E6"))
	assert.Nil(t, ParseShelfUnits(""))
}
