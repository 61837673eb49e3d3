// File: internal/cli/recv.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newRecvCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Print datagrams received on the bound address",
		Long: `Print datagrams received on the bound address. Datagrams whose checksum
coverage is below recv_coverage are dropped by the kernel and never shown.
A count of 0 receives until interrupted or until read_timeout expires.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSocket(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			addr, err := s.LocalAddr()
			if err != nil {
				return err
			}
			a.log.Info("receiving", zap.Stringer("addr", addr))

			buf := make([]byte, a.cfg.BufferSize)
			for i := 0; count == 0 || i < count; i++ {
				n, from, err := s.RecvFrom(buf)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", from, strconv.Quote(string(buf[:n])))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of datagrams to receive (0 = unlimited)")
	return cmd
}
