package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the config file when it changes and hands valid configs to onChange.
// Invalid configs are logged and skipped.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Simulation)
}

// NewWatcher watches the directory of path, so that editors replacing the
// file by rename are seen too.
func NewWatcher(path string, onChange func(Simulation)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching config dir %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  w,
		onChange: onChange,
	}, nil
}

// Run dispatches reloads until ctx is canceled. Closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	slog.Info("config watcher started", "path", w.path)

	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("config watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != w.path {
				continue
			}
			debounce.Reset(reloadDebounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", "err", err)

		case <-debounce.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadSimulation(w.path)
	if err != nil {
		slog.Error("config reload failed", "path", w.path, "err", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config reload rejected", "path", w.path, "err", err)
		return
	}

	slog.Info("config reloaded", "path", w.path, "agents", len(cfg.Agents))
	w.onChange(cfg)
}
