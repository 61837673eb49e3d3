// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness-polling adapter for descriptors
// exposed through api.Descriptor: epoll on Linux and Android, kqueue on
// FreeBSD, and a stub that reports api.ErrNotSupported elsewhere.
//
// The package never imports the socket implementation. A UDP-Lite socket is
// registered by its raw descriptor and stays owned by its handle; the reactor
// never closes registered descriptors.
//
// Edge-triggered registration (EventEdgeTriggered) only reports transitions,
// so the descriptor must be in nonblocking mode before it is registered and
// every callback must drain it until the would-block error.
package reactor
