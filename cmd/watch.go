package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/niribar/cli"
	"github.com/grovetools/niribar/internal/engine"
	"github.com/grovetools/niribar/internal/sink"
	"github.com/grovetools/niribar/logging"
	"github.com/spf13/cobra"
)

// NewWatchCmd returns the command that follows the event stream.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print one JSON document per compositor event",
		Long: `Subscribes to the niri event stream and prints the projected workspace
tree after every event, one document per line. Exits cleanly when the
compositor closes the stream or on SIGINT/SIGTERM.

Examples:
  niribar watch
  niribar watch --wait --dedupe
  niribar watch --envelope outputs --pretty never`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
	cli.AddSocketFlags(cmd.Flags())
	cli.AddOutputFlags(cmd.Flags())
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.NewLogger("watch")

	client, err := connect(ctx, cfg)
	if err != nil {
		return ignoreCanceled(ctx, err)
	}
	stream, err := client.EventStream(ctx)
	if err != nil {
		return ignoreCanceled(ctx, err)
	}
	defer stream.Close()

	out, err := sink.NewJSONLines(cmd.OutOrStdout(), cfg.Output.Envelope, cfg.Output.Pretty)
	if err != nil {
		return err
	}

	logger.WithField("socket", client.Socket()).Debug("Following event stream")
	return engine.New(stream, out, logger, engine.Options{Dedupe: cfg.Output.Dedupe}).Run(ctx)
}

// ignoreCanceled turns an error caused by an interrupt into a clean exit.
func ignoreCanceled(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
