// File: reactor/logger.go
// Author: momentics <momentics@gmail.com>

package reactor

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the reactor package's logger. It is a no-op logger unless
// SetLogger was called.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the reactor package's logger. Call it before
// creating reactors.
func SetLogger(l *zap.Logger) {
	logger = l
}
