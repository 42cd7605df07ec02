package models

import "strings"

// DefaultSide is the side label used when none is given.
const DefaultSide = "A"

// AreaOverlay represents a map bounding box used to highlight a shelf position.
// The coordinate space (normalized or pixels) is defined by the consumer.
type AreaOverlay struct {
	// X0 is the left edge.
	X0 float64 `json:"x0"`
	// Y0 is the top edge.
	Y0 float64 `json:"y0"`
	// X1 is the right edge.
	X1 float64 `json:"x1"`
	// Y1 is the bottom edge.
	Y1 float64 `json:"y1"`
}

// OverlayKey identifies a physical shelf position.
type OverlayKey struct {
	Aisle      string
	Side       string
	ShelfUnit  int
	ShelfLevel int
}

// NewOverlayKey builds a key with the aisle trimmed and the side trimmed,
// uppercased and defaulted to DefaultSide.
func NewOverlayKey(aisle, side string, shelfUnit, shelfLevel int) OverlayKey {
	return OverlayKey{
		Aisle:      strings.TrimSpace(aisle),
		Side:       NormalizeSide(side),
		ShelfUnit:  shelfUnit,
		ShelfLevel: shelfLevel,
	}
}

// NormalizeSide trims and uppercases a side label, returning DefaultSide for blanks.
func NormalizeSide(side string) string {
	side = strings.ToUpper(strings.TrimSpace(side))
	if side == "" {
		return DefaultSide
	}
	return side
}

// OverlayMap maps shelf positions to their overlay boxes.
type OverlayMap map[OverlayKey]AreaOverlay
