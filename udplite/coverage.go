// File: udplite/coverage.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Checksum coverage value and its socket option encoding.

package udplite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/momentics/hioload-udplite/api"
)

// headerLen is the UDP-Lite header size, always covered by the checksum.
const headerLen = 8

// MaxCoverage is the largest payload coverage the option value can carry.
const MaxCoverage = 0xffff - headerLen

// Coverage is the number of leading payload bytes protected by the checksum.
// The zero value is FullCoverage.
type Coverage struct {
	n       uint16
	partial bool
}

// FullCoverage covers the entire datagram. It is the default of new sockets.
var FullCoverage = Coverage{}

// PartialCoverage covers the header and the first n payload bytes.
func PartialCoverage(n uint16) Coverage {
	return Coverage{n: n, partial: true}
}

// IsFull reports whether c covers the entire datagram.
func (c Coverage) IsFull() bool { return !c.partial }

// Bytes returns the covered payload length, or false for FullCoverage.
func (c Coverage) Bytes() (uint16, bool) {
	return c.n, c.partial
}

func (c Coverage) String() string {
	if !c.partial {
		return "full"
	}
	return strconv.FormatUint(uint64(c.n), 10)
}

// ParseCoverage parses "full" (or an empty string) and decimal byte counts.
func ParseCoverage(s string) (Coverage, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "full") {
		return FullCoverage, nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return FullCoverage, fmt.Errorf("coverage %q: %w", s, api.ErrInvalidArgument)
	}
	if n > MaxCoverage {
		return FullCoverage, fmt.Errorf("coverage %d exceeds %d: %w", n, MaxCoverage, api.ErrInvalidArgument)
	}
	return PartialCoverage(uint16(n)), nil
}

// optionValue converts c to the CSCOV option value, which counts the header.
func (c Coverage) optionValue() (int, error) {
	if !c.partial {
		return 0, nil
	}
	if c.n > MaxCoverage {
		return 0, fmt.Errorf("coverage %d exceeds %d: %w", c.n, MaxCoverage, api.ErrInvalidArgument)
	}
	return int(c.n) + headerLen, nil
}

// coverageFromOption is the inverse of optionValue for values read back
// from the kernel.
func coverageFromOption(v int) (Coverage, error) {
	switch {
	case v == 0:
		return FullCoverage, nil
	case v >= headerLen && v <= 0xffff:
		return PartialCoverage(uint16(v - headerLen)), nil
	case v > 0 && v < headerLen:
		return FullCoverage, fmt.Errorf("coverage %d only partially covers the header: %w", v, api.ErrInvalidCoverage)
	default:
		return FullCoverage, fmt.Errorf("coverage %d is outside of the valid range: %w", v, api.ErrInvalidCoverage)
	}
}
