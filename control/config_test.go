// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package control_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/control"
	"github.com/momentics/hioload-udplite/udplite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := control.Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, control.Default(), cfg)

	send, recv, err := cfg.Coverages()
	require.NoError(t, err)
	assert.True(t, send.IsFull())
	assert.True(t, recv.IsFull())
}

func TestParse_Full(t *testing.T) {
	cfg, err := control.Parse([]byte(`
bind: "[::1]:9000"
peer: "[::1]:9001"
nonblocking: true
send_coverage: 8
recv_coverage: full
read_timeout: 250ms
buffer_size: 1500
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "[::1]:9000", cfg.Bind)
	assert.Equal(t, "[::1]:9001", cfg.Peer)
	assert.True(t, cfg.Nonblocking)
	assert.Equal(t, 250*time.Millisecond, cfg.ReadTimeout)
	assert.Equal(t, 1500, cfg.BufferSize)

	send, recv, err := cfg.Coverages()
	require.NoError(t, err)
	assert.Equal(t, udplite.PartialCoverage(8), send)
	assert.Equal(t, udplite.FullCoverage, recv)

	opts, err := cfg.BindOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestParse_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"coverage": "send_coverage: 70000",
		"buffer":   "buffer_size: 0",
		"bind":     `bind: ""`,
		"timeout":  "read_timeout: -1s",
		"recv":     "recv_coverage: lots",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := control.Parse([]byte(doc))
			assert.ErrorIs(t, err, api.ErrInvalidArgument)
		})
	}

	_, err := control.Parse([]byte("bind: [unclosed"))
	assert.Error(t, err)
}

func TestConfigStore_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "udplite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("send_coverage: 4\n"), 0o600))

	store := control.NewConfigStore(nil)
	var seen []string
	store.OnReload(func(c *control.Config) { seen = append(seen, c.SendCoverage) })

	assert.True(t, control.Reload(store, path, zap.NewNop()))
	assert.Equal(t, []string{"4"}, seen)
	assert.Equal(t, "4", store.Get().SendCoverage)

	require.NoError(t, os.WriteFile(path, []byte("send_coverage: nope\n"), 0o600))
	assert.False(t, control.Reload(store, path, zap.NewNop()))
	assert.Equal(t, "4", store.Get().SendCoverage, "failed reload keeps previous config")
	assert.Len(t, seen, 1)
}

func TestLoad_Missing(t *testing.T) {
	_, err := control.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	l, err := control.NewLogger("warn")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = control.NewLogger("loud")
	assert.Error(t, err)
}
