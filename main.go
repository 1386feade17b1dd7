package main

import (
	"fmt"
	"os"

	"github.com/dev-mohitbeniwal/workbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
