package main

import (
	"fmt"
	"os"

	"github.com/gridscope/gridscope/internal/cli"
	"github.com/gridscope/gridscope/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
