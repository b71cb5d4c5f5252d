// ABOUTME: Select command persisting the device and update-method choice
// ABOUTME: Resyncs the push topic subscription after the selection changes

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/obs"
	"github.com/nvdw/otacheck/internal/prefs"
	"github.com/nvdw/otacheck/internal/push"
)

var selectCmd = &cobra.Command{
	Use:   "select --device <id> --method <id>",
	Short: "Select your device and update method",
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, _ := cmd.Flags().GetInt64("device")
		methodID, _ := cmd.Flags().GetInt64("method")
		if deviceID < 0 || methodID < 0 {
			return fmt.Errorf("both --device and --method are required (see 'otacheck devices' and 'otacheck methods')")
		}

		if err := prefsStore.SetInt64(prefs.KeyDeviceID, deviceID); err != nil {
			return fmt.Errorf("failed to persist device selection: %w", err)
		}
		if err := prefsStore.SetInt64(prefs.KeyUpdateMethodID, methodID); err != nil {
			return fmt.Errorf("failed to persist update method selection: %w", err)
		}

		ctx := context.Background()
		logger := obs.NewLogger()
		manager := push.NewSubscriptionManager(&push.LogTransport{Logger: logger}, prefsStore, logger)
		manager.Resync(eng.FetchDevices(ctx, "all"), eng.FetchUpdateMethods(ctx, deviceID, true))

		fmt.Printf("Selected device %d with update method %d.\n", deviceID, methodID)
		return nil
	},
}

func init() {
	selectCmd.Flags().Int64("device", -1, "device id")
	selectCmd.Flags().Int64("method", -1, "update method id")
	rootCmd.AddCommand(selectCmd)
}
