package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"whisperbatch/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			err = notifications.NewNotifier(cfg).Notify(cmd.Context(), "whisperbatch test", "Notification system test")
			switch {
			case errors.Is(err, notifications.ErrDisabled):
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications disabled (set notifications.ntfy_topic or notifications.desktop)")
				return nil
			case err != nil:
				fmt.Fprintln(cmd.OutOrStdout(), "Notification not sent")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
