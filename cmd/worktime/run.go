package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"worktime_notifier/internal/app"
	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/infra/metrics"
)

// newRunCmd builds the start/end commands. The message may be given either
// positionally or with -m.
func newRunCmd(use, short string) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   use + " [message]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := execution.ParseKind(use)
			if err != nil {
				return err
			}
			if message == "" && len(args) == 1 {
				message = args[0]
			}

			n, err := newNotifier(cfg)
			if err != nil {
				return err
			}

			m := metrics.New()
			defer pushMetrics(cfg, log, m)

			out, err := runOnce(cmd.Context(), cfg, log, n, m, kind, message)
			if err != nil {
				if app.IsCancelled(err) {
					return fmt.Errorf("%s notification interrupted: %w", kind, err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Custom message to send instead of the default")
	return cmd
}
