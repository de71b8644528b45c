package sticker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sant0-9/companion/internal/logger"
)

const defaultDebounce = 300 * time.Millisecond

// dropped remembers which sticker a dropped file became.
type dropped struct {
	id    string
	size  int64
	mtime time.Time
}

// Watcher imports PNG and GIF files dropped into a folder as custom
// stickers.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	picker   *Picker
	dir      string
	pending  map[string]time.Time
	imported map[string]dropped
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// Watch starts watching dir, creating it if needed. Files that fail
// validation are logged and skipped.
func Watch(ctx context.Context, dir string, picker *Picker) (*Watcher, error) {
	return watch(ctx, dir, picker, defaultDebounce)
}

func watch(ctx context.Context, dir string, picker *Picker, debounce time.Duration) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		picker:   picker,
		dir:      dir,
		pending:  make(map[string]time.Time),
		imported: make(map[string]dropped),
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		running:  true,
	}
	go w.run(ctx)
	logger.With("sticker").Info("watching drop folder", "dir", dir)
	return w, nil
}

func (w *Watcher) Dir() string { return w.dir }

// Stop ends the watch and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		logger.With("sticker").Error("closing watcher", "err", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.With("sticker").Error("watch error", "err", err)
		case <-tick.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !allowedExt[strings.ToLower(filepath.Ext(ev.Name))] {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	w.mu.Lock()
	w.pending[ev.Name] = time.Now()
	w.mu.Unlock()
}

// flush imports files whose last event is older than the debounce window.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.importFile(ctx, path)
	}
}

// importFile uploads a dropped file. A file already imported is skipped
// while unchanged; a re-saved file replaces its earlier sticker.
func (w *Watcher) importFile(ctx context.Context, path string) {
	log := logger.With("sticker")
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("skipping dropped file", "path", path, "err", err)
		}
		return
	}

	w.mu.Lock()
	prev, seen := w.imported[path]
	w.mu.Unlock()
	if seen && prev.size == info.Size() && prev.mtime.Equal(info.ModTime()) {
		return
	}

	src, err := FileSource(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("skipping dropped file", "path", path, "err", err)
		}
		return
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	s, err := w.picker.Upload(ctx, name, src)
	if err != nil {
		log.Warn("skipping dropped file", "path", path, "err", err)
		return
	}

	if seen {
		if err := w.picker.Remove(ctx, prev.id); err != nil && !errors.Is(err, ErrNotFound) {
			log.Warn("removing replaced sticker", "id", prev.id, "err", err)
		}
	}
	w.mu.Lock()
	w.imported[path] = dropped{id: s.ID, size: info.Size(), mtime: info.ModTime()}
	w.mu.Unlock()
}
