package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestParseRangeCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start *float64
		end   *float64
		raw   string
	}{
		{"ascending", "001.2 - 005.3", ptr(1.2), ptr(5.3), "001.2 - 005.3"},
		{"reversed", "005 - 001", ptr(1), ptr(5), "005 - 001"},
		{"blank", "   ", nil, nil, ""},
		{"empty", "", nil, nil, ""},
		{"single number", "  220.5 ", ptr(220.5), ptr(220.5), "220.5"},
		{"en dash", "100–150", ptr(100), ptr(150), "100–150"},
		{"em dash", "100 — 150", ptr(100), ptr(150), "100 — 150"},
		{"ascii arrow", "100->150", ptr(100), ptr(150), "100->150"},
		{"unicode arrow", "100 → 150", ptr(100), ptr(150), "100 → 150"},
		{"hasta", "100 HASTA 150", ptr(100), ptr(150), "100 HASTA 150"},
		{"bare a", "100 a 150", ptr(100), ptr(150), "100 a 150"},
		{"accented word ending in a", "Biología 570 - 579", ptr(570), ptr(579), "Biología 570 - 579"},
		{"accented word before range", "Filosofía 100 - 199", ptr(100), ptr(199), "Filosofía 100 - 199"},
		{"word starting with a", "año 2000 - 2010", ptr(2000), ptr(2010), "año 2000 - 2010"},
		{"a inside word", "Historia de España 946 a 946.9", ptr(946), ptr(946.9), "Historia de España 946 a 946.9"},
		{"hasta suffix", "Matemáticas 510 hasta 519", ptr(510), ptr(519), "Matemáticas 510 hasta 519"},
		{"comma decimals", "3,5 - 4,25", ptr(3.5), ptr(4.25), "3,5 - 4,25"},
		{"last segment wins", "1 - 2 - 3", ptr(1), ptr(3), "1 - 2 - 3"},
		{"prefixed text", "Dewey 810 - 819.9 lit", ptr(810), ptr(819.9), "Dewey 810 - 819.9 lit"},
		{"no numbers", "sin datos", nil, nil, "sin datos"},
		{"missing end", "100 - fin", ptr(100), nil, "100 - fin"},
		{"missing start", "- 150", nil, ptr(150), "- 150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := ParseRangeCell(tt.input)
			assert.Equal(t, tt.raw, cell.Raw)
			assert.Equal(t, tt.start, cell.Start)
			assert.Equal(t, tt.end, cell.End)
			assert.Equal(t, tt.start != nil && tt.end != nil, cell.Complete())
		})
	}
}

func TestParseRangeCellBareAHeuristic(t *testing.T) {
	// "a" splits even outside a range context.
	cell := ParseRangeCell("Sala a 12")
	require.Nil(t, cell.Start)
	require.NotNil(t, cell.End)
	assert.Equal(t, 12.0, *cell.End)
}

func TestParseRangeCellOrdered(t *testing.T) {
	inputs := []string{"9 - 1", "1 - 9", "500.5 a 20", "3 hasta 3", "7,5 → 7,25", "0 - 0.0001"}
	for _, input := range inputs {
		cell := ParseRangeCell(input)
		require.True(t, cell.Complete(), input)
		assert.LessOrEqual(t, *cell.Start, *cell.End, input)
	}
}
