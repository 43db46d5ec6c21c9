package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps the latest valid version of a config file. Edits that fail
// to parse are logged and ignored; the previous Config stays current.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	current atomic.Pointer[Config]
	logger  *slog.Logger
	reloads atomic.Int64
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// Watch starts watching path. initial is returned by Current until the
// file changes. The parent directory is watched rather than the file so
// that editors which replace the file on save are still seen.
func Watch(path string, initial *Config, logger *slog.Logger) (*Watcher, error) {
	if initial == nil {
		return nil, fmt.Errorf("initial config cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:   filepath.Clean(path),
		fsw:    fsw,
		logger: logger,
		stopCh: make(chan struct{}),
	}
	w.current.Store(initial)

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Current returns the most recent valid Config. Callers must not modify it.
func (w *Watcher) Current() *Config {
	return w.current.Load()
}

// Reloads returns how many times the config was successfully reloaded.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", slog.Any("err", err))

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	// Editors truncate before writing; an empty file is a save in progress.
	if info, err := os.Stat(w.path); err != nil || info.Size() == 0 {
		return
	}

	cfg, err := Parse(w.path)
	if err != nil {
		w.logger.Warn("ignoring invalid config edit", slog.String("path", w.path), slog.Any("err", err))
		return
	}
	w.current.Store(cfg)
	w.reloads.Add(1)
	w.logger.Debug("config reloaded", slog.String("path", w.path))
}
