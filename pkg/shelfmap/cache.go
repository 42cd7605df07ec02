package shelfmap

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot is an immutable view of the loaded data. Callers must not modify it.
type Snapshot struct {
	Table    models.LocationTable
	Overlays models.OverlayMap
	LoadedAt time.Time
}

// ReloadReport summarizes a reload. Counts describe the snapshot in effect
// after the reload; a non-empty error means that half kept its previous value.
type ReloadReport struct {
	Records      int       `json:"records"`
	Overlays     int       `json:"overlays"`
	TableError   string    `json:"tableError,omitempty"`
	OverlayError string    `json:"overlayError,omitempty"`
	LoadedAt     time.Time `json:"loadedAt"`
}

// OK reports whether both sources loaded.
func (r ReloadReport) OK() bool {
	return r.TableError == "" && r.OverlayError == ""
}

// Cache holds the current snapshot. Readers never block and never observe
// a partially built table; reloads are serialized and swap the snapshot whole.
type Cache struct {
	src  Sources
	log  *zap.Logger
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
	now  func() time.Time
}

// NewCache creates a cache holding an empty snapshot. Call Reload to load data.
func NewCache(opts Options) *Cache {
	c := &Cache{
		src: opts.Sources,
		log: opts.logger(),
		now: time.Now,
	}
	c.snap.Store(&Snapshot{
		Table:    models.NewLocationTable("", nil),
		Overlays: models.OverlayMap{},
	})
	return c
}

// Sources returns the files the cache loads from.
func (c *Cache) Sources() Sources {
	return c.src
}

// Snapshot returns the current snapshot.
func (c *Cache) Snapshot() *Snapshot {
	return c.snap.Load()
}

// Find runs FindLocation against the current snapshot.
func (c *Cache) Find(query float64, filters Filters) (Match, bool) {
	s := c.Snapshot()
	return FindLocation(s.Table, s.Overlays, query, filters)
}

// Reload loads the spreadsheet and the overlay CSV concurrently and swaps in
// the result. A source that fails to load keeps its previous data.
func (c *Cache) Reload(ctx context.Context) ReloadReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		table      models.LocationTable
		overlays   models.OverlayMap
		tableErr   error
		overlayErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		table, tableErr = LoadTable(c.src.Spreadsheet)
		return nil
	})
	g.Go(func() error {
		overlays, overlayErr = LoadOverlays(c.src.Overlays)
		return nil
	})
	_ = g.Wait()

	prev := c.Snapshot()
	next := &Snapshot{Table: table, Overlays: overlays, LoadedAt: c.now()}
	report := ReloadReport{LoadedAt: next.LoadedAt}

	if tableErr != nil {
		next.Table = prev.Table
		report.TableError = tableErr.Error()
		c.log.Warn("spreadsheet not loaded, keeping previous table",
			zap.String("path", c.src.Spreadsheet),
			zap.Int("records", prev.Table.Len()),
			zap.Error(tableErr))
	}
	if overlayErr != nil {
		next.Overlays = prev.Overlays
		report.OverlayError = overlayErr.Error()
		c.log.Warn("overlays not loaded, keeping previous overlays",
			zap.String("path", c.src.Overlays),
			zap.Error(overlayErr))
	}
	if err := ctx.Err(); err != nil {
		c.log.Warn("reload canceled, snapshot unchanged", zap.Error(err))
		report.Records = prev.Table.Len()
		report.Overlays = len(prev.Overlays)
		report.LoadedAt = prev.LoadedAt
		return report
	}

	c.snap.Store(next)
	report.Records = next.Table.Len()
	report.Overlays = len(next.Overlays)
	c.log.Info("location data loaded",
		zap.String("format", string(next.Table.Format)),
		zap.Int("records", report.Records),
		zap.Int("overlays", report.Overlays),
		zap.Int("max_shelf_unit", next.Table.MaxShelfUnit),
		zap.Int("max_shelf_level", next.Table.MaxShelfLevel))
	return report
}
