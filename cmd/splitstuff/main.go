// Command splitstuff serves the SplitStuff ledger API and computes settle-up
// plans offline.
package main

import (
	"os"

	"github.com/splitstuff/splitstuff/pkg/logging"
)

func main() {
	// LOG_LEVEL applies until a command loads its config.
	logging.Setup()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
