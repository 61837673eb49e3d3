// File: internal/cli/root.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// cobra command tree of the udplite tool.

package cli

import (
	"fmt"
	"os"

	"github.com/momentics/hioload-udplite/control"
	"github.com/momentics/hioload-udplite/reactor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by subcommands, filled in PersistentPreRunE.
type app struct {
	cfgFile  string
	bind     string
	logLevel string

	cfg *control.Config
	log *zap.Logger
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "udplite",
		Short: "Send, receive and echo UDP-Lite datagrams",
		Long: `udplite exercises UDP-Lite (RFC 3828) sockets: partial checksum
coverage for sent datagrams, coverage filters for received ones, and a
reactor-driven echo service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.StringVar(&a.bind, "bind", "", "local address host:port (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		a.newHelloCommand(),
		a.newSendCommand(),
		a.newRecvCommand(),
		a.newEchoCommand(),
		a.newCoverageCommand(),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup() error {
	cfg := control.Default()
	if a.cfgFile != "" {
		var err error
		if cfg, err = control.Load(a.cfgFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if a.bind != "" {
		cfg.Bind = a.bind
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := control.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	reactor.SetLogger(log.Named("reactor"))
	a.cfg = cfg
	a.log = log
	return nil
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
