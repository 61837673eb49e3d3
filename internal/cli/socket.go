// File: internal/cli/socket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"context"

	"github.com/momentics/hioload-udplite/udplite"
	"go.uber.org/zap"
)

// openSocket binds the configured address with the configured options plus
// extra, and applies the read timeout.
func (a *app) openSocket(ctx context.Context, extra ...udplite.Option) (*udplite.Socket, error) {
	opts, err := a.cfg.BindOptions()
	if err != nil {
		return nil, err
	}
	s, err := udplite.Listen(ctx, a.cfg.Bind, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	if a.cfg.ReadTimeout > 0 {
		if err := s.SetReadTimeout(a.cfg.ReadTimeout); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	a.log.Debug("socket bound", zap.Stringer("socket", s))
	return s, nil
}
