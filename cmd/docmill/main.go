// Package main is the entry point for the docmill CLI binary.
package main

import (
	"os"

	cli "docmill/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
