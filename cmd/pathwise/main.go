// Command pathwise is the fleet decarbonization pathway planner CLI
// and API server.
package main

import (
	"fmt"
	"os"

	"github.com/pathwise/pathwise/internal/cli"
	"github.com/pathwise/pathwise/pkg/version"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}
