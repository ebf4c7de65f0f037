// Package main implements the pshcalc binary, which counts finite algebraic
// structures (semigroups, monoids, categories, monoid acts) by exhaustive
// enumeration.
package main

import (
	"context"
	"os"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Cobra prints the error itself.
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
