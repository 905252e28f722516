package main

import (
	"os"

	"github.com/grovetools/niribar/cli"
	"github.com/grovetools/niribar/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		_ = cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
