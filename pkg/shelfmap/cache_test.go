package shelfmap

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/biblioteca/shelfmap/internal/testkit"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overlayCSV = "pasillo,lado,estanteria,anaquel,x0,y0,x1,y1\n,A,2,1,0.1,0.1,0.2,0.2\n"

func newTestCache(t *testing.T) (*Cache, Sources) {
	t.Helper()
	src := DefaultSources(t.TempDir())
	testkit.WriteXLSX(t, src.Spreadsheet, testkit.WideSheet())
	testkit.WriteFile(t, src.Overlays, overlayCSV)
	return NewCache(Options{Sources: src}), src
}

func TestCacheStartsEmpty(t *testing.T) {
	c := NewCache(Options{Sources: DefaultSources(t.TempDir())})
	snap := c.Snapshot()
	assert.Zero(t, snap.Table.Len())
	assert.Empty(t, snap.Overlays)

	_, ok := c.Find(3.5, Filters{})
	assert.False(t, ok)
}

func TestCacheReload(t *testing.T) {
	c, _ := newTestCache(t)

	report := c.Reload(context.Background())
	require.True(t, report.OK(), "%+v", report)
	assert.Equal(t, 4, report.Records)
	assert.Equal(t, 1, report.Overlays)
	assert.False(t, report.LoadedAt.IsZero())

	m, ok := c.Find(3.5, Filters{})
	require.True(t, ok)
	assert.Equal(t, 2, m.Record.ShelfUnit)
	assert.Equal(t, 1, m.Record.ShelfLevel)
	require.NotNil(t, m.Overlay)
	assert.Equal(t, 0.2, m.Overlay.X1)
}

func TestCacheReloadMissingSpreadsheetKeepsPrevious(t *testing.T) {
	c, src := newTestCache(t)
	require.True(t, c.Reload(context.Background()).OK())
	before := c.Snapshot()

	require.NoError(t, os.Remove(src.Spreadsheet))
	report := c.Reload(context.Background())

	assert.Contains(t, report.TableError, "file not found")
	assert.Contains(t, report.TableError, src.Spreadsheet)
	assert.Empty(t, report.OverlayError)
	assert.Equal(t, 4, report.Records)
	assert.Equal(t, before.Table, c.Snapshot().Table)

	_, ok := c.Find(3.5, Filters{})
	assert.True(t, ok)
}

func TestCacheReloadMissingOverlaysClearsThem(t *testing.T) {
	c, src := newTestCache(t)
	require.True(t, c.Reload(context.Background()).OK())

	require.NoError(t, os.Remove(src.Overlays))
	report := c.Reload(context.Background())
	assert.True(t, report.OK())
	assert.Zero(t, report.Overlays)

	m, ok := c.Find(3.5, Filters{})
	require.True(t, ok)
	assert.Nil(t, m.Overlay)
}

func TestCacheReloadCanceledKeepsSnapshot(t *testing.T) {
	c, _ := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := c.Reload(ctx)
	assert.Zero(t, report.Records)
	assert.Zero(t, c.Snapshot().Table.Len())
}

func TestCacheReloadIdempotent(t *testing.T) {
	c, _ := newTestCache(t)
	c.Reload(context.Background())
	first := c.Snapshot()
	c.Reload(context.Background())
	second := c.Snapshot()

	if diff := cmp.Diff(first.Table, second.Table); diff != "" {
		t.Errorf("tables differ after reload (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Overlays, second.Overlays); diff != "" {
		t.Errorf("overlays differ after reload (-first +second):\n%s", diff)
	}
}

func TestTableJSONRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	c.Reload(context.Background())
	table := c.Snapshot().Table

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var decoded models.LocationTable
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(table, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheConcurrentReadersDuringReload(t *testing.T) {
	c, _ := newTestCache(t)
	c.Reload(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snap := c.Snapshot()
				assert.Equal(t, 4, snap.Table.Len())
				_, ok := c.Find(1.5, Filters{})
				assert.True(t, ok)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		c.Reload(context.Background())
	}
	wg.Wait()
}

func TestDefaultSources(t *testing.T) {
	src := DefaultSources("data")
	assert.Equal(t, filepath.Join("data", "Biblioteca MHC.xlsx"), src.Spreadsheet)
	assert.Equal(t, filepath.Join("data", "areas.csv"), src.Overlays)
}
