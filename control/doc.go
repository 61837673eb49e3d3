// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, hot-reload, runtime metrics and debug introspection for
// tools built on the UDP-Lite socket wrapper.
//
// Provides:
//   - YAML configuration (Config) with coverage parsing and bind options
//   - A ConfigStore with reload listeners and signal-driven reload
//   - A metrics registry with counters for datagram traffic
//   - Debug probes reporting live socket and platform state
package control
