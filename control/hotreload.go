// control/hotreload.go
// Reloads a ConfigStore from its YAML file when the process receives a signal.

package control

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"
)

// ReloadOnSignal re-reads path into store every time one of sigs arrives,
// until ctx is done. A file that fails to load leaves the store unchanged.
func ReloadOnSignal(ctx context.Context, store *ConfigStore, path string, log *zap.Logger, sigs ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		defer signal.Stop(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-ch:
				Reload(store, path, log.With(zap.Stringer("signal", sig)))
			}
		}
	}()
}

// Reload loads path into store once and reports whether it succeeded.
func Reload(store *ConfigStore, path string, log *zap.Logger) bool {
	cfg, err := Load(path)
	if err != nil {
		log.Warn("config reload failed, keeping previous configuration",
			zap.String("path", path), zap.Error(err))
		return false
	}
	store.Set(cfg)
	log.Info("config reloaded", zap.String("path", path))
	return true
}
