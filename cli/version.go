package cli

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/niribar/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates a standard version command. With --json the
// build info is printed as a JSON object.
func NewVersionCommand(componentName string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the version number of %s", componentName),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			out := cmd.OutOrStdout()

			if GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "%s %s\n\n", componentName, info.Short())
			fmt.Fprintln(out, info.String())
			return nil
		},
	}
}
