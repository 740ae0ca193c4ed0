package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	root := newRootCommand()
	root.AddCommand(
		newServeCommand(),
		newMCPCommand(),
		newSeedCommand(),
		newAdminCommand(),
		newConfigCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
