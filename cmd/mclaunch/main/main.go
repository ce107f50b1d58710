package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/mclaunch/cmd/mclaunch"
)

func main() {
	rootCmd := mclaunch.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, mclaunch.RenderError(err))
		os.Exit(1)
	}
}
