// File: internal/cli/echo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/momentics/hioload-udplite/affinity"
	"github.com/momentics/hioload-udplite/control"
	"github.com/momentics/hioload-udplite/internal/echo"
	"github.com/momentics/hioload-udplite/reactor"
	"github.com/momentics/hioload-udplite/udplite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newEchoCommand() *cobra.Command {
	var (
		maxPending int
		cpu        int
	)
	cmd := &cobra.Command{
		Use:   "echo",
		Short: "Echo every received datagram back to its sender",
		Long: `Echo every received datagram back to its sender until SIGINT or SIGTERM.
With --config, SIGHUP reloads the file and re-applies send_coverage and
recv_coverage to the running socket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runEcho(ctx, maxPending, cpu)
		},
	}
	cmd.Flags().IntVar(&maxPending, "max-pending", 1024, "replies kept while the socket is not writable")
	cmd.Flags().IntVar(&cpu, "cpu", -1, "pin the event loop to this CPU (-1 = no pinning)")
	return cmd
}

func (a *app) runEcho(ctx context.Context, maxPending, cpu int) error {
	if cpu >= 0 {
		unpin, err := affinity.Pin(cpu)
		if err != nil {
			return err
		}
		defer unpin()
		a.log.Info("event loop pinned", zap.Int("cpu", cpu))
	}

	s, err := a.openSocket(ctx, udplite.WithNonblocking())
	if err != nil {
		return err
	}
	defer s.Close()

	r, err := reactor.NewReactor()
	if err != nil {
		return err
	}
	defer r.Close()

	metrics := control.NewMetricsRegistry()
	svc, err := echo.New(s, r,
		echo.WithLogger(a.log.Named("echo")),
		echo.WithMetrics(metrics),
		echo.WithBufferSize(a.cfg.BufferSize),
		echo.WithMaxPending(maxPending),
	)
	if err != nil {
		return err
	}
	defer svc.Close()

	probes := control.NewDebugProbes()
	control.RegisterPlatformProbes(probes)
	control.RegisterSocketProbes(probes, "echo", s)

	if a.cfgFile != "" {
		store := control.NewConfigStore(a.cfg)
		store.OnReload(func(cfg *control.Config) {
			if err := cfg.ApplyCoverage(s); err != nil {
				a.log.Warn("applying reloaded coverage failed", zap.Error(err))
				return
			}
			a.log.Info("coverage updated",
				zap.String("send", cfg.SendCoverage),
				zap.String("recv", cfg.RecvCoverage))
		})
		control.ReloadOnSignal(ctx, store, a.cfgFile, a.log, syscall.SIGHUP)
	}

	err = svc.Run(ctx)
	a.log.Info("echo service stopped",
		zap.Any("metrics", metrics.GetSnapshot()),
		zap.Any("state", probes.DumpState()))
	return err
}
