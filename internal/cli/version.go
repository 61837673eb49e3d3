package cli

import (
	"fmt"

	"github.com/momentics/hioload-udplite/udplite"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X github.com/momentics/hioload-udplite/internal/cli.version=x.y.z"
var version = "0.1.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the tool version and UDP-Lite support of this build",
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := udplite.Capabilities()
			fmt.Fprintf(cmd.OutOrStdout(), "udplite version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "platform: %s, UDP-Lite supported: %t\n", caps.OS, caps.Supported)
			return nil
		},
	}
}
