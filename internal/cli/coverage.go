// File: internal/cli/coverage.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/momentics/hioload-udplite/udplite"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// coverageReport is what the coverage command prints.
type coverageReport struct {
	OS                 string `yaml:"os"`
	Protocol           int    `yaml:"protocol"`
	SendCoverageOption int    `yaml:"send_cscov_option"`
	RecvCoverageOption int    `yaml:"recv_cscov_option"`
	Socket             string `yaml:"socket"`
	SendCoverage       string `yaml:"send_coverage"`
	RecvCoverage       string `yaml:"recv_coverage"`
}

func (a *app) newCoverageCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Bind a socket with the configured coverage and report what the kernel applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSocket(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			send, err := s.SendChecksumCoverage()
			if err != nil {
				return err
			}
			recv, err := s.RecvChecksumCoverage()
			if err != nil {
				return err
			}
			caps := udplite.Capabilities()
			report := coverageReport{
				OS:                 caps.OS,
				Protocol:           caps.Protocol,
				SendCoverageOption: caps.SendCoverageOption,
				RecvCoverageOption: caps.RecvCoverageOption,
				Socket:             s.String(),
				SendCoverage:       send.String(),
				RecvCoverage:       recv.String(),
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(output) {
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(report)
			case "", "text":
				fmt.Fprintf(out, "platform:      %s (protocol %d, cscov options %d/%d)\n",
					report.OS, report.Protocol, report.SendCoverageOption, report.RecvCoverageOption)
				fmt.Fprintf(out, "socket:        %s\n", report.Socket)
				fmt.Fprintf(out, "send coverage: %s\n", report.SendCoverage)
				fmt.Fprintf(out, "recv filter:   %s\n", report.RecvCoverage)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	return cmd
}
