// Fencecalc — fence material, labor, and cost estimator.
//
// Build:
//
//	go build -o fencecalc ./cmd/fencecalc
package main

import (
	"os"

	"github.com/fenceworks/fencecalc/internal/cli"
)

// Populated via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
