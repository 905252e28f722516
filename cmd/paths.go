package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/niribar/pkg/niri"
	"github.com/grovetools/niribar/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput lists the filesystem locations niribar uses.
type PathsOutput struct {
	ConfigDir   string   `json:"config_dir"`
	StateDir    string   `json:"state_dir"`
	LogDir      string   `json:"log_dir"`
	ConfigFiles []string `json:"config_files"`
	Socket      string   `json:"socket,omitempty"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by niribar",
		Long: `Print the XDG-compliant paths used by niribar as JSON.

- config_dir: where config.yml or config.toml is looked up
- state_dir: niribar state
- log_dir: log files when the file sink is enabled
- config_files: candidate config files, in lookup order
- socket: the niri socket from NIRI_SOCKET, when set`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir:   paths.ConfigDir(),
				StateDir:    paths.StateDir(),
				LogDir:      paths.LogDir(),
				ConfigFiles: paths.ConfigFiles(),
				Socket:      os.Getenv(niri.SocketEnv),
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	return cmd
}
