package cli

import (
	"github.com/grovetools/niribar/config"
	"github.com/grovetools/niribar/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the persistent options shared by every command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with the standard persistent flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file (yml or toml)")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the configuration named by --config, or the default file,
// configures logging from it and then applies --verbose and --json.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := GetOptions(cmd)

	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigFile != "" {
		cfg, err = config.Load(opts.ConfigFile)
	} else {
		cfg, err = config.LoadDefaultWithLogger(logging.NewLogger("config").Logger)
	}
	if err != nil {
		return nil, err
	}

	if err := logging.Configure(cfg.Logging); err != nil {
		return nil, err
	}
	if opts.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	if opts.JSONOutput {
		logging.SetJSON()
	}
	return cfg, nil
}
