// Package main is the entry point for the envgate CLI.
package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/unrss/envgate/internal/cmd"
)

//go:embed version.txt
var version string

func main() {
	if err := cmd.Execute(cmd.Assets{
		Version: version,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
