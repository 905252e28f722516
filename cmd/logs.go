package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/niribar/logging"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the niribar log file",
		Long: `Prints the log file written when logging.file.enabled is set. Without
logging.file.path the newest file in the state log directory is used.

Examples:
  # Follow the log of a running bar
  niribar logs -f`,
		Args: cobra.NoArgs,
		RunE: runLogsE,
	}
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path, err := logging.LogFile(cfg.Logging)
	if err != nil {
		return err
	}
	follow, _ := cmd.Flags().GetBool("follow")

	t, err := tail.TailFile(path, tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: !follow,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer t.Cleanup()
	defer t.Stop()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return line.Err
			}
			fmt.Fprintln(out, line.Text)
		}
	}
}
