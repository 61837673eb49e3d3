// File: internal/cli/send.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"

	"github.com/momentics/hioload-udplite/api"
	"github.com/momentics/hioload-udplite/udplite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newSendCommand() *cobra.Command {
	var (
		connect bool
		count   int
	)
	cmd := &cobra.Command{
		Use:   "send [ADDR] MESSAGE",
		Short: "Send MESSAGE as a UDP-Lite datagram to ADDR or the configured peer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, msg := a.cfg.Peer, args[len(args)-1]
			if len(args) == 2 {
				peer = args[0]
			}
			if peer == "" {
				return fmt.Errorf("send: no ADDR given and no peer configured: %w", api.ErrInvalidArgument)
			}
			candidates, err := udplite.ResolveAddrs(cmd.Context(), peer)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				return fmt.Errorf("send %q: %w", peer, api.ErrNoAddresses)
			}
			to := candidates[0]

			s, err := a.openSocket(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			send := func(p []byte) (int, error) { return s.SendTo(p, to) }
			if connect {
				if err := s.Connect(to); err != nil {
					return err
				}
				send = s.Send
			}
			for i := 0; i < count; i++ {
				n, err := send([]byte(msg))
				if err != nil {
					return err
				}
				a.log.Debug("datagram sent", zap.Stringer("to", to), zap.Int("bytes", n))
				fmt.Fprintf(cmd.OutOrStdout(), "sent %d bytes to %s\n", n, to)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&connect, "connect", false, "connect to the peer and use send instead of sendto")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of datagrams to send")
	return cmd
}

