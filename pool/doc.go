// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool provides allocation reuse for datagram payloads: a generic
// typed wrapper over sync.Pool and a byte pool sized for datagrams.
package pool
