// Package watch reports batches of changed Go files under a set of directories.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher debounces file system events into batches.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	filter   func(path string) bool
	logger   *slog.Logger
}

// Options configure a Watcher.
type Options struct {
	Debounce time.Duration
	// Filter selects the paths that make up a batch. Nil accepts *.go files.
	Filter func(path string) bool
	Logger *slog.Logger
}

// New watches dirs. Subdirectories are not added automatically.
func New(dirs []string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: opts.Debounce,
		filter:   opts.Filter,
		logger:   opts.Logger,
	}
	if w.filter == nil {
		w.filter = func(path string) bool { return filepath.Ext(path) == ".go" }
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return w, nil
}

// Run calls onBatch with the sorted set of paths written or created since
// the previous batch, once no further event arrived for the debounce interval.
// It returns when ctx is done and closes the watcher.
func (w *Watcher) Run(ctx context.Context, onBatch func(ctx context.Context, paths []string)) error {
	defer w.fsw.Close()

	pending := make(map[string]struct{})

	var (
		timer  *time.Timer
		timerC <-chan time.Time
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

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !w.filter(ev.Name) {
				continue
			}

			w.logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil

			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			onBatch(ctx, paths)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
