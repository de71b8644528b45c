// Package main provides the companion CLI: a terminal chat with assistant
// modes, a one-shot ask command and the HTTP API server.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
