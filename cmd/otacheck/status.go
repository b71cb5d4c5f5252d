// ABOUTME: Status command showing service health and server announcements
// ABOUTME: Routes non-recoverable severity events to stderr with a distinct marker

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/models"
	"github.com/nvdw/otacheck/internal/prefs"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show update service health and announcements",
	Long: `Show the health of the update service plus any server announcements
for the selected device and update method.

Failures are classified: UNREACHABLE means the service is down while your
network works; a normal status is assumed when you are simply offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refresh, _ := cmd.Flags().GetBool("refresh")

		status := eng.FetchServerStatus(context.Background(), !refresh)

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		marker := green("v")
		switch status.Status {
		case models.StatusMaintenance, models.StatusOutdated, models.StatusError:
			marker = red("x")
		case models.StatusWarning, models.StatusUnreachable:
			marker = yellow("!")
		}
		fmt.Printf("%s Server status: %s\n", marker, status.Status)
		fmt.Printf("%s %s\n", faint("Latest app version:"), status.LatestAppVersion)
		fmt.Printf("%s %v\n", faint("Automatic installation:"), status.AutomaticInstallationEnabled)
		fmt.Printf("%s %ds\n", faint("Notification delay:"), status.PushNotificationDelaySeconds)

		settings := prefs.LoadSettings(prefsStore)
		if settings.DeviceID < 0 || settings.UpdateMethodID < 0 {
			return nil
		}

		messages, event := eng.FetchServerMessages(context.Background(),
			settings.DeviceID, settings.UpdateMethodID, status)

		if len(messages) > 0 {
			fmt.Println()
			for _, m := range messages {
				fmt.Printf("  %s %s\n", faint("•"), m.Message(settings.Locale))
			}
		}

		if event != nil {
			switch event.Code {
			case models.EventCodeMaintenance:
				fmt.Fprintf(os.Stderr, "%s the update service is under maintenance; try again later\n", red("error:"))
			case models.EventCodeOutdated:
				fmt.Fprintf(os.Stderr, "%s this app version is no longer supported; please upgrade\n", red("error:"))
			}
		}

		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("refresh", false, "bypass the cached status and re-fetch")
	rootCmd.AddCommand(statusCmd)
}
