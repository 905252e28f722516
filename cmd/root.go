// Package cmd holds the niribar subcommands.
package cmd

import (
	"github.com/grovetools/niribar/cli"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the niribar command tree. Without a subcommand it behaves
// like "watch".
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"niribar",
		"Stream niri workspace state as JSON for status bars",
	)
	rootCmd.Long = `Connects to the niri compositor over its IPC socket, follows the event
stream and prints one JSON document per event describing every output, its
workspaces and their tiled windows.

Examples:
  # Feed an eww deflisten
  niribar --envelope outputs

  # Inspect the current state once
  niribar snapshot --pretty always`
	rootCmd.Args = cobra.NoArgs
	rootCmd.Annotations = map[string]string{cli.EnvAnnotation: `
NIRI_SOCKET=niri IPC socket path, set by niri for its session
NIRIBAR_ENVELOPE=document layout (plain or outputs)
NIRIBAR_PRETTY=indent documents (auto, always, never)
NIRIBAR_DEDUPE=skip unchanged documents
NIRIBAR_WAIT=wait for the socket to appear
NIRIBAR_LOG_LEVEL=log level on stderr
NIRIBAR_THEME=color theme (kanagawa, terminal)
NIRIBAR_HOME=base directory for config and state`}
	rootCmd.RunE = runWatch
	cli.AddSocketFlags(rootCmd.Flags())
	cli.AddOutputFlags(rootCmd.Flags())

	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewSnapshotCmd())
	rootCmd.AddCommand(NewMonitorCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewPathsCmd())
	rootCmd.AddCommand(NewLogsCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("niribar"))

	return rootCmd
}
