// Command ethiopia is the CLI entrypoint (SPEC_FULL §6), grounded on the
// teacher's cli/main.go root-command wiring and cmd/compozy.go's
// RootCmd()+AddCommand assembly.
package main

import (
	"os"

	"github.com/C2SM/ethiopia/internal/cli"
)

func main() {
	root := cli.RootCmd()
	err := root.Execute()
	os.Exit(cli.ExitCode(err))
}
