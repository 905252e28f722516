package cmd

import (
	"context"
	"os"

	"github.com/grovetools/niribar/cli"
	"github.com/grovetools/niribar/config"
	"github.com/grovetools/niribar/logging"
	"github.com/grovetools/niribar/pkg/niri"
	"github.com/spf13/cobra"
)

// loadConfig resolves the effective configuration for cmd: file, then
// environment, then the flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cli.ApplyOverrides(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// connect returns a client for the configured socket, waiting for the socket
// to appear first when asked to.
func connect(ctx context.Context, cfg *config.Config) (*niri.Client, error) {
	logger := logging.NewLogger("niri")

	client, err := niri.NewClient(cfg.Socket.Path, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Socket.Wait {
		if _, err := os.Stat(client.Socket()); err != nil {
			logger.WithField("socket", client.Socket()).Info("Waiting for niri socket")
			if err := niri.WaitForSocket(ctx, client.Socket()); err != nil {
				return nil, err
			}
		}
	}
	return client, nil
}
