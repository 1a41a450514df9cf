package main

import (
	"os"

	"github.com/axiomcanvas/canvas-flow/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
