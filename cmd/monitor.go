package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/niribar/cli"
	"github.com/grovetools/niribar/internal/engine"
	"github.com/grovetools/niribar/internal/sink"
	"github.com/grovetools/niribar/logging"
	"github.com/grovetools/niribar/tui/monitor"
	"github.com/spf13/cobra"
)

// NewMonitorCmd returns the interactive view of the workspace tree.
func NewMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show the live workspace tree in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The alt screen owns the terminal; only a file sink may keep logging.
			if !cfg.Logging.File.Enabled {
				logging.SetOutput(io.Discard)
			}

			client, err := connect(ctx, cfg)
			if err != nil {
				return ignoreCanceled(ctx, err)
			}
			stream, err := client.EventStream(ctx)
			if err != nil {
				return ignoreCanceled(ctx, err)
			}
			defer stream.Close()

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			trees := sink.NewChannel(ctx, 1)
			done := make(chan error, 1)
			go func() {
				err := engine.New(stream, trees, logging.NewLogger("monitor"), engine.Options{Dedupe: true}).Run(ctx)
				trees.Close()
				done <- err
			}()

			p := tea.NewProgram(monitor.New(trees.C()), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			cancel()
			return <-done
		},
	}
	cli.AddSocketFlags(cmd.Flags())
	return cmd
}
