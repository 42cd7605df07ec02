// Package importer rebuilds the SQLite locations table from the spreadsheet
// and, for wide sheets, the row assignment CSV.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/parser"
	"go.uber.org/zap"
)

// Writer replaces the persisted location records.
type Writer interface {
	ReplaceLocations(ctx context.Context, records []models.LocationRecord) (int, error)
}

// Options names the import inputs.
type Options struct {
	Spreadsheet string
	Assignments string
	Logger      *zap.Logger
}

// Summary describes a completed import.
type Summary struct {
	Format               models.SheetFormat `json:"format"`
	SheetRows            int                `json:"sheetRows"`
	Records              int                `json:"records"`
	AssignmentsGenerated bool               `json:"assignmentsGenerated"`
}

// Run reads the spreadsheet, places wide-format rows using the assignment CSV
// (generating it when absent) and replaces the stored locations. A missing
// spreadsheet returns a *shelfmap.LoadError and leaves the store untouched.
func Run(ctx context.Context, opts Options, w Writer) (Summary, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sheet, err := shelfmap.LoadSheet(opts.Spreadsheet)
	if err != nil {
		return Summary{}, err
	}

	table := parser.BuildTable(sheet)
	summary := Summary{Format: table.Format, SheetRows: len(sheet.Rows)}

	if table.Format == models.FormatWide {
		assignments, generated, err := loadOrGenerate(opts.Assignments, len(sheet.Rows))
		if err != nil {
			return Summary{}, err
		}
		if generated {
			log.Info("generated row assignments",
				zap.String("path", opts.Assignments),
				zap.Int("rows", len(assignments)))
		}
		summary.AssignmentsGenerated = generated
		table = parser.ApplyAssignments(table, assignments)
	}

	n, err := w.ReplaceLocations(ctx, table.Rows)
	if err != nil {
		return Summary{}, fmt.Errorf("store locations: %w", err)
	}
	summary.Records = n

	log.Info("import complete",
		zap.String("format", string(summary.Format)),
		zap.Int("sheet_rows", summary.SheetRows),
		zap.Int("records", summary.Records))
	return summary, nil
}

func loadOrGenerate(path string, rows int) ([]parser.Assignment, bool, error) {
	assignments, err := parser.LoadAssignments(path)
	if err == nil {
		return assignments, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, fmt.Errorf("read assignments %s: %w", path, err)
	}

	assignments = parser.GenerateAssignments(rows)
	if err := parser.WriteAssignments(path, assignments); err != nil {
		return nil, false, fmt.Errorf("write assignments %s: %w", path, err)
	}
	return assignments, true, nil
}
