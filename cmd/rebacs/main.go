package main

import (
	"os"

	"github.com/rebacs/rebacs/pkg/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	runCmd := cmd.NewRunCommand()
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
