// Command fluentsql is the CLI entry point for the query compiler.
package main

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/fluentsql/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
