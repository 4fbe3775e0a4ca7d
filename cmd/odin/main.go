// Command odin demonstrates the odin dependency-injection runtime: it wires a
// small graph of mutually dependent singletons and prints the bundle tree.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
