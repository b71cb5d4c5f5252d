// ABOUTME: Devices command listing devices known to the update service
// ABOUTME: Supports the server-side enabled/disabled filter

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices known to the update service",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		devices := eng.FetchDevices(context.Background(), filter)
		if len(devices) == 0 {
			fmt.Println("No devices returned (service unreachable or empty filter).")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		for _, d := range devices {
			state := ""
			if !d.Enabled {
				state = faint(" (disabled)")
			}
			fmt.Printf("%-6d %s%s\n", d.ID, d.Name, state)
		}
		return nil
	},
}

func init() {
	devicesCmd.Flags().String("filter", "enabled", "device filter: all, enabled, or disabled")
	rootCmd.AddCommand(devicesCmd)
}
