// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-app-kernel/internal/logger"
	"github.com/MKhiriev/go-app-kernel/internal/metrics"
)

// ConfigWatcher reloads a configuration source when its file changes.
//
// The parent directory is watched rather than the file, because editors
// and config management tools usually replace files by renaming a new copy
// over them. Bursts of events are collapsed into one reload after debounce.
type ConfigWatcher struct {
	source   Reloader
	debounce time.Duration
	logger   *logger.Logger

	watcher *fsnotify.Watcher
	file    string

	mu    sync.Mutex
	timer *time.Timer

	// reloaded is signalled after every reload attempt; tests wait on it.
	reloaded chan error
}

// NewConfigWatcher prepares a watcher for source. It fails when the
// directory of source.Path() cannot be watched.
func NewConfigWatcher(source Reloader, debounce time.Duration, log *logger.Logger) (*ConfigWatcher, error) {
	if log == nil {
		log = logger.Nop()
	}

	file, err := filepath.Abs(source.Path())
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &ConfigWatcher{
		source:   source,
		debounce: debounce,
		logger:   log,
		watcher:  watcher,
		file:     file,
		reloaded: make(chan error, 1),
	}, nil
}

// Run processes file events in the background until ctx is cancelled.
func (w *ConfigWatcher) Run(ctx context.Context) {
	w.logger.Info().Str("file", w.file).Msg("watching configuration file")
	go w.loop(ctx)
}

func (w *ConfigWatcher) loop(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *ConfigWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *ConfigWatcher) reload() {
	err := w.source.Reload()
	metrics.ConfigReloads.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		w.logger.Error().Err(err).Str("file", w.file).Msg("configuration reload failed, keeping previous version")
	} else {
		w.logger.Info().Str("file", w.file).Msg("configuration reloaded")
	}

	select {
	case w.reloaded <- err:
	default:
	}
}
