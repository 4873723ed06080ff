package main

import (
	"os"

	"github.com/tryp/album-table/internal/cli"
)

// album-table-tui is a shortcut for "album-table tui".
func main() {
	cmd := cli.NewRootCmd()
	cmd.SetArgs(append([]string{"tui"}, os.Args[1:]...))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
