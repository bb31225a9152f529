// bigcalc is a command-line calculator for exact decimal arithmetic.
package main

import (
	"os"

	"github.com/govalues/bigdecimal/cmd/bigcalc/command"
)

func main() {
	if err := command.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
