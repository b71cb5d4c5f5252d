// ABOUTME: Methods command listing update methods for a device
// ABOUTME: The --root flag includes methods only usable with root access

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/prefs"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List update methods for a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID := prefs.LoadSettings(prefsStore).DeviceID
		if cmd.Flags().Changed("device") {
			deviceID, _ = cmd.Flags().GetInt64("device")
		}
		if deviceID < 0 {
			return fmt.Errorf("no device selected: pass --device or run 'otacheck select'")
		}
		rooted, _ := cmd.Flags().GetBool("root")

		methods := eng.FetchUpdateMethods(context.Background(), deviceID, rooted)
		if len(methods) == 0 {
			fmt.Println("No update methods available for this device.")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		for _, m := range methods {
			marker := ""
			if m.Recommended {
				marker = green(" (recommended)")
			}
			fmt.Printf("%-6d %s%s\n", m.ID, m.EnglishName, marker)
		}
		return nil
	},
}

func init() {
	methodsCmd.Flags().Int64("device", -1, "device id (default: persisted selection)")
	methodsCmd.Flags().Bool("root", false, "include methods that require root access")
	rootCmd.AddCommand(methodsCmd)
}
