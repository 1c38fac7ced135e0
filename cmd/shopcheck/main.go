// Command shopcheck runs the browser test suite for the demo web shop.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/webstore-qa/shopcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		color.Red("shopcheck: %v", err)
		os.Exit(1)
	}
}
