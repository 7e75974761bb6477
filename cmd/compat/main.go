// Package main implements the compat command line tool, which applies
// energy compatibility corrections to batches of computed entries.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
