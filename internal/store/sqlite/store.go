// Package sqlite persists location records in a SQLite locations table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biblioteca/shelfmap/internal/store/sqlite/migrations"
	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	_ "modernc.org/sqlite"
)

// Store persists location records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a SQLite database and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReplaceLocations deletes every stored location and inserts records in order,
// in one transaction. It returns the number of rows inserted.
func (s *Store) ReplaceLocations(ctx context.Context, records []models.LocationRecord) (n int, err error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations`); err != nil {
		return 0, fmt.Errorf("clear locations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO locations (
	   excel_row, pasillo, lado, estanteria, anaquel, rango_inicio, rango_fin, raw_text
	 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ExcelRow, r.Aisle, r.Side, r.ShelfUnit, r.ShelfLevel, r.RangeStart, r.RangeEnd, r.RawText,
		); err != nil {
			return 0, fmt.Errorf("insert location (row %d, level %d): %w", r.ExcelRow, r.ShelfLevel, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace: %w", err)
	}
	return n, nil
}

// FindLocation returns the first stored location, by insertion order, whose
// range contains query within shelfmap.Epsilon.
func (s *Store) FindLocation(ctx context.Context, query float64) (models.LocationRecord, bool, error) {
	row := s.sqlDB.QueryRowContext(ctx, selectLocations+`
		 WHERE rango_inicio - ? <= ? AND ? <= rango_fin + ?
		 ORDER BY id
		 LIMIT 1`,
		shelfmap.Epsilon, query, query, shelfmap.Epsilon,
	)
	r, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocationRecord{}, false, nil
	}
	if err != nil {
		return models.LocationRecord{}, false, fmt.Errorf("find location: %w", err)
	}
	return r, true, nil
}

// ListLocations returns every stored location in insertion order.
func (s *Store) ListLocations(ctx context.Context) ([]models.LocationRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, selectLocations+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []models.LocationRecord
	for rows.Next() {
		r, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return out, nil
}

const selectLocations = `SELECT excel_row, pasillo, lado, estanteria, anaquel, rango_inicio, rango_fin, raw_text
	 FROM locations`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (models.LocationRecord, error) {
	var r models.LocationRecord
	err := row.Scan(&r.ExcelRow, &r.Aisle, &r.Side, &r.ShelfUnit, &r.ShelfLevel, &r.RangeStart, &r.RangeEnd, &r.RawText)
	return r, err
}
