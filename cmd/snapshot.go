package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/niribar/cli"
	"github.com/grovetools/niribar/internal/projection"
	"github.com/grovetools/niribar/internal/reconcile"
	"github.com/grovetools/niribar/internal/sink"
	"github.com/grovetools/niribar/pkg/niri"
	"github.com/spf13/cobra"
)

// NewSnapshotCmd returns the one-shot variant of watch.
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current workspace tree once",
		Long: `Requests the full workspace and window lists, projects them and prints
a single document. Useful for scripts and for seeding a bar before the
first event arrives.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client, err := connect(ctx, cfg)
			if err != nil {
				return ignoreCanceled(ctx, err)
			}

			workspaces, err := client.Workspaces(ctx)
			if err != nil {
				return err
			}
			windows, err := client.Windows(ctx)
			if err != nil {
				return err
			}

			state := reconcile.New()
			if err := state.Apply(&niri.WorkspacesChanged{Workspaces: workspaces}); err != nil {
				return err
			}
			if err := state.Apply(&niri.WindowsChanged{Windows: windows}); err != nil {
				return err
			}
			tree, err := projection.Project(state)
			if err != nil {
				return err
			}

			out, err := sink.NewJSONLines(cmd.OutOrStdout(), cfg.Output.Envelope, cfg.Output.Pretty)
			if err != nil {
				return err
			}
			return out.Emit(tree)
		},
	}
	cli.AddSocketFlags(cmd.Flags())
	cli.AddOutputFlags(cmd.Flags())
	_ = cmd.Flags().MarkHidden("dedupe")
	return cmd
}
