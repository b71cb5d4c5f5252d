// ABOUTME: Resync command forcing a push topic re-subscription
// ABOUTME: Useful after restores or upgrades that leave subscription state unknown

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/obs"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/push"
)

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Re-subscribe to the push topic for the current selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := prefs.LoadSettings(prefsStore)
		if settings.DeviceID < 0 || settings.UpdateMethodID < 0 {
			return fmt.Errorf("no device selected: run 'otacheck select' first")
		}

		forget, _ := cmd.Flags().GetBool("forget")
		if forget {
			if err := prefsStore.SetString(prefs.KeyNotificationTopic, ""); err != nil {
				return fmt.Errorf("failed to clear persisted topic: %w", err)
			}
		}

		ctx := context.Background()
		logger := obs.NewLogger()
		manager := push.NewSubscriptionManager(&push.LogTransport{Logger: logger}, prefsStore, logger)
		manager.Resync(eng.FetchDevices(ctx, "all"), eng.FetchUpdateMethods(ctx, settings.DeviceID, true))

		fmt.Printf("Subscribed to %s\n", push.Topic(settings.DeviceID, settings.UpdateMethodID))
		return nil
	},
}

func init() {
	resyncCmd.Flags().Bool("forget", false, "treat subscription state as unknown and clear the full topic matrix")
	rootCmd.AddCommand(resyncCmd)
}
