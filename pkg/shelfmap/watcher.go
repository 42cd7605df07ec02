package shelfmap

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Cache when its source files change on disk.
type Watcher struct {
	cache    *Cache
	fsw      *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	log      *zap.Logger
	// reloaded, if set, receives every report produced by the watcher.
	reloaded func(ReloadReport)
}

// NewWatcher watches the directories holding the cache's source files.
// The directories must exist.
func NewWatcher(cache *Cache, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	src := cache.Sources()
	w := &Watcher{
		cache:    cache,
		fsw:      fsw,
		files:    make(map[string]bool),
		debounce: debounce,
		log:      logger,
	}
	dirs := make(map[string]bool)
	for _, path := range []string{src.Spreadsheet, src.Overlays} {
		if path == "" {
			continue
		}
		w.files[filepath.Clean(path)] = true
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.log.Error("closing file watcher", zap.Error(err))
		}
	}()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("source file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			report := w.cache.Reload(ctx)
			if w.reloaded != nil {
				w.reloaded(report)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}
