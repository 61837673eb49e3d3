// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package udplite exposes UDP-Lite (RFC 3828) sockets with an API close to a
// plain datagram socket, plus accessors for the checksum coverage options
// UDPLITE_SEND_CSCOV and UDPLITE_RECV_CSCOV.
//
// UDP-Lite lets a receiver accept datagrams whose payload is only partly
// covered by the checksum. It is implemented by Linux and FreeBSD (Android
// kernels usually keep it enabled); on every other target Bind fails with
// api.ErrProtocolNotSupported.
//
// A Socket owns exactly one descriptor. Every method is a direct syscall:
// nothing is retried, queued or locked, and failures are returned as the
// native errno wrapped in *os.SyscallError. Use IsWouldBlock to tell the
// retryable would-block condition of a nonblocking socket from real errors.
//
// Event-loop integration goes through RawFD. Switch the socket to nonblocking
// mode before registering it for edge-triggered readiness; see package reactor.
//
// Platform caveats, passed through unmodified:
//
//   - FreeBSD discards received datagrams whose coverage differs from the
//     receive filter in either direction, not only those with less coverage.
//   - Datagrams sent with partial coverage have been observed to be dropped
//     silently by the sending host's stack on one platform, even though the
//     receiving platform would accept them. Full coverage is not affected.
package udplite
