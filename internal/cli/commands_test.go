//go:build linux || freebsd

// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package cli

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/udplite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func skipWithoutUDPLite(t *testing.T, err error) {
	t.Helper()
	if udplite.IsProtocolNotSupported(err) {
		t.Skipf("UDP-Lite unavailable: %v", err)
	}
}

func TestHello(t *testing.T) {
	out, err := run(t, "hello", "--log-level", "error")
	skipWithoutUDPLite(t, err)
	require.NoError(t, err)
	assert.Contains(t, out, "checksum coverage: send=full, recv filter=full")
	assert.Contains(t, out, "received Hello, UDP-Lite")
}

func TestCoverage_YAMLFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "udplite.yaml")
	cfg := "bind: 127.0.0.1:0\nsend_coverage: 12\nrecv_coverage: 4\nlog_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	out, err := run(t, "coverage", "--config", path, "-o", "yaml")
	skipWithoutUDPLite(t, err)
	require.NoError(t, err)

	var report coverageReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "12", report.SendCoverage)
	assert.Equal(t, "4", report.RecvCoverage)
	assert.Equal(t, 136, report.Protocol)
}

func TestCoverage_UnknownFormat(t *testing.T) {
	_, err := run(t, "coverage", "--log-level", "error", "-o", "json")
	skipWithoutUDPLite(t, err)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSend_RequiresPeer(t *testing.T) {
	_, err := run(t, "send", "--log-level", "error", "payload")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestSend_ToExplicitAddr(t *testing.T) {
	rx, err := udplite.Bind(netip.MustParseAddrPort("127.0.0.1:0"))
	skipWithoutUDPLite(t, err)
	require.NoError(t, err)
	defer rx.Close()
	to, err := rx.LocalAddr()
	require.NoError(t, err)

	out, err := run(t, "send", "--log-level", "error", "--connect", "-n", "2", to.String(), "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "sent 4 bytes to "+to.String())

	buf := make([]byte, 16)
	for i := 0; i < 2; i++ {
		n, err := rx.Recv(buf)
		require.NoError(t, err)
		assert.Equal(t, "ping", string(buf[:n]))
	}
}
