// Package watch re-runs docs generation whenever the guides change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses a burst of editor writes into one regeneration.
const DefaultDebounce = 200 * time.Millisecond

// RegenerateFunc rebuilds the output. It runs on the watcher goroutine, so
// two regenerations never overlap.
type RegenerateFunc func(ctx context.Context) error

// Watch starts an fsnotify watcher on dir (non-recursive) and calls
// regenerate once per debounced burst of .md changes until ctx is
// cancelled. A failing regeneration is logged and watching continues.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger *slog.Logger, regenerate RegenerateFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dir))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := regenerate(ctx); err != nil {
				logger.Error("watcher: regenerate failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("watcher: regenerated")

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".md") || filepath.Dir(ev.Name) != filepath.Clean(dir) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watcher: change",
				slog.String("path", filepath.Base(ev.Name)),
				slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
