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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reload struct {
	cfg QuadLabConfig
	err error
}

func startWatcher(t *testing.T, path string) <-chan reload {
	t.Helper()

	events := make(chan reload, 8)
	w, err := NewWatcher(path, func(cfg QuadLabConfig, err error) {
		events <- reload{cfg: cfg, err: err}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return events
}

func waitReload(t *testing.T, events <-chan reload) reload {
	t.Helper()
	select {
	case r := <-events:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
		return reload{}
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "quadlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8000\n"), 0644))

	events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8001\n  rate_limit_rps: 5\n"), 0644))
	r := waitReload(t, events)
	require.NoError(t, r.err)
	assert.Equal(t, 8001, r.cfg.Server.Port)
	assert.Equal(t, 5.0, r.cfg.Server.RateLimitRPS)
}

func TestWatcher_ReportsInvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "quadlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8000\n"), 0644))

	events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0644))
	r := waitReload(t, events)
	assert.ErrorIs(t, r.err, ErrInvalidConfig)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quadlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	events := startWatcher(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case r := <-events:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(4 * reloadDebounce):
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent", "quadlab.yaml"), func(QuadLabConfig, error) {})
	assert.Error(t, err)
}
