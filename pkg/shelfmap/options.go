// Package shelfmap loads library shelf location tables and answers Dewey
// number lookups against them.
package shelfmap

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Default file names inside a data directory.
const (
	DefaultSpreadsheet = "Biblioteca MHC.xlsx"
	DefaultOverlays    = "areas.csv"
)

// Sources names the files a cache loads from.
type Sources struct {
	// Spreadsheet is the .xlsx or .xls location table; only the first sheet is read.
	Spreadsheet string
	// Overlays is the CSV of map bounding boxes.
	Overlays string
}

// DefaultSources returns the default file names resolved against dataDir.
func DefaultSources(dataDir string) Sources {
	return Sources{
		Spreadsheet: filepath.Join(dataDir, DefaultSpreadsheet),
		Overlays:    filepath.Join(dataDir, DefaultOverlays),
	}
}

// Options configures a Cache.
type Options struct {
	// Sources are the files to load.
	Sources Sources
	// Logger receives load diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
