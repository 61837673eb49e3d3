// File: cmd/udplite/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Command udplite sends, receives and echoes UDP-Lite datagrams.
package main

import "github.com/momentics/hioload-udplite/internal/cli"

func main() {
	cli.Execute()
}
