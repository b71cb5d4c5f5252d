// ABOUTME: Update command checking for a new firmware build
// ABOUTME: Renders the update description as markdown with download details

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/config"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a firmware update",
	Long: `Check the update service for a new firmware build for the selected
device and update method.

When the service is unreachable and the network is down, the last known-good
result is shown instead. No result means "unknown", not "up to date".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, updateMethodID, err := selection(cmd)
		if err != nil {
			return err
		}
		incremental, _ := cmd.Flags().GetString("incremental")

		update := eng.FetchUpdateData(context.Background(), deviceID, updateMethodID, incremental)

		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		bold := color.New(color.Bold).SprintFunc()

		if update == nil {
			fmt.Println("Update availability unknown: the service could not be reached and no offline data exists.")
			return nil
		}

		fmt.Println(strings.Repeat("─", config.SeparatorWidth))
		if update.SystemIsUpToDate {
			fmt.Printf("%s Your system is up to date.\n", green("v"))
		} else if update.UpdateInformationAvailable {
			fmt.Printf("%s %s\n", green("v"), bold("Update available: "+update.VersionNumber))
		} else {
			fmt.Printf("%s No update information available.\n", faint("-"))
		}

		if update.ReconstructedOffline {
			fmt.Printf("%s\n", faint("(showing last known data; device appears to be offline)"))
		}

		if update.UpdateInformationAvailable && !update.SystemIsUpToDate {
			fmt.Printf("\n%s %s (%d bytes)\n", faint("File:"), update.Filename, update.DownloadSize)
			fmt.Printf("%s %s\n", faint("URL:"), update.DownloadURL)

			if update.Description != "" {
				rendered, err := glamour.Render(update.Description, "auto")
				if err != nil {
					fmt.Printf("\n%s\n", update.Description)
				} else {
					fmt.Print(rendered)
				}
			}
		}
		fmt.Println(strings.Repeat("─", config.SeparatorWidth))

		return nil
	},
}

func init() {
	updateCmd.Flags().Int64("device", 0, "device id (default: persisted selection)")
	updateCmd.Flags().Int64("method", 0, "update method id (default: persisted selection)")
	updateCmd.Flags().String("incremental", "", "currently installed incremental version")
	rootCmd.AddCommand(updateCmd)
}
