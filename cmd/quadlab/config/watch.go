// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events a single save produces.
const reloadDebounce = 150 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
//
// # Description
//
// Watches the file's parent directory so that editors which replace the
// file by rename are handled. Each settled change is parsed with
// LoadFile; the callback receives either the new configuration or the
// error that kept it from loading. A failed reload leaves the caller's
// current configuration untouched.
//
// # Thread Safety
//
// Start should only be called once. The callback runs on the watcher's
// goroutine.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(QuadLabConfig, error)
}

// NewWatcher creates a watcher for path.
//
// # Inputs
//
//   - path: The config file. Its directory must exist.
//   - onChange: Called after every reload attempt.
//
// # Outputs
//
//   - *Watcher: Ready to Start.
//   - error: Non-nil if the directory cannot be watched.
func NewWatcher(path string, onChange func(QuadLabConfig, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{path: abs, watcher: w, onChange: onChange}, nil
}

// Start processes events until ctx is cancelled or Stop is called.
// Should be run in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onChange(QuadLabConfig{}, err)

		case <-timer.C:
			w.onChange(LoadFile(w.path))

		case <-ctx.Done():
			return
		}
	}
}

// Stop releases the underlying watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
