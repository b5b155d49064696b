package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the background statistics collector",
	Long: `Collect runs the scheduler loop: it enqueues a collection job per
configured team on each interval, drains the queue, and stores the
resulting statistics. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if scheduler == nil {
			return errors.New("collector is not configured")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return scheduler.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
