//go:build linux || freebsd

// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package echo_test

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/momentics/hioload-udplite/internal/echo"
	"github.com/momentics/hioload-udplite/reactor"
	"github.com/momentics/hioload-udplite/udplite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho_OverUDPLite(t *testing.T) {
	loopback := netip.MustParseAddrPort("127.0.0.1:0")
	server, err := udplite.Bind(loopback, udplite.WithNonblocking())
	if udplite.IsProtocolNotSupported(err) {
		t.Skipf("UDP-Lite unavailable: %v", err)
	}
	require.NoError(t, err)
	defer server.Close()

	client, err := udplite.Bind(loopback)
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.SetReadTimeout(2*time.Second))

	r, err := reactor.NewReactor()
	require.NoError(t, err)
	defer r.Close()

	svc, err := echo.New(server, r, echo.WithPollInterval(10))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	serverAddr, err := server.LocalAddr()
	require.NoError(t, err)
	require.NoError(t, client.Connect(serverAddr))
	_, err = client.Send([]byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, from, err := client.RecvFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
	assert.Equal(t, serverAddr, from)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int64(1), svc.Metrics().Counter("datagrams.out"))
}
