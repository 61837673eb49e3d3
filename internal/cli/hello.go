// File: internal/cli/hello.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"

	"github.com/momentics/hioload-udplite/udplite"
	"github.com/spf13/cobra"
)

func (a *app) newHelloCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Send a minimally covered datagram to the socket itself and read it back",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSocket(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			out := cmd.OutOrStdout()

			self, err := s.LocalAddr()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "addr of bound socket %s: %s\n", s, self)

			send, err := s.SendChecksumCoverage()
			if err != nil {
				return err
			}
			recv, err := s.RecvChecksumCoverage()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "checksum coverage: send=%s, recv filter=%s\n", send, recv)

			if err := s.SetSendChecksumCoverage(udplite.PartialCoverage(0)); err != nil {
				return fmt.Errorf("set send coverage to the minimum: %w", err)
			}
			if err := s.SetRecvChecksumCoverage(udplite.PartialCoverage(0)); err != nil {
				return fmt.Errorf("disable receive coverage filter: %w", err)
			}

			if _, err := s.SendTo([]byte("Hello, UDP-Lite"), self); err != nil {
				return err
			}
			buf := make([]byte, 20)
			n, err := s.Recv(buf)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "received %s\n", buf[:n])
			return nil
		},
	}
}
