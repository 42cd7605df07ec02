package shelfmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/parser"
)

// LoadTable reads the first sheet of a spreadsheet and builds its location table.
// A missing file fails with ErrFileNotFound, an unreadable one with ErrInvalidFormat,
// both wrapped in a *LoadError.
func LoadTable(path string) (models.LocationTable, error) {
	sheet, err := LoadSheet(path)
	if err != nil {
		return models.LocationTable{}, err
	}
	return parser.BuildTable(sheet), nil
}

// LoadSheet reads the first sheet of a spreadsheet with the same errors as LoadTable.
func LoadSheet(path string) (models.Sheet, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return models.Sheet{}, NewLoadError(path, "spreadsheet", ErrFileNotFound)
	}

	sheet, err := parser.ReadSheet(path)
	if err != nil {
		return models.Sheet{}, NewLoadError(path, "spreadsheet", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	return sheet, nil
}

// LoadOverlays reads the overlay CSV. A missing file yields an empty map.
func LoadOverlays(path string) (models.OverlayMap, error) {
	overlays, err := parser.LoadOverlays(path)
	if err != nil {
		return nil, NewLoadError(path, "overlays", err)
	}
	return overlays, nil
}
