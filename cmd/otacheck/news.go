// ABOUTME: News command listing cached news items with read status
// ABOUTME: Refreshes the local cache from the server when reachable

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/config"
	"github.com/nvdw/otacheck/internal/prefs"
)

var newsCmd = &cobra.Command{
	Use:     "news",
	Aliases: []string{"ls"},
	Short:   "List news items",
	Long: `List news items from the update service, newest first.

The local cache is refreshed first when the service is reachable; a failed
or empty fetch never discards previously cached items.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		deviceID, updateMethodID, err := selection(cmd)
		if err != nil {
			return err
		}

		items, err := eng.FetchNews(context.Background(), deviceID, updateMethodID)
		if err != nil {
			return fmt.Errorf("failed to list news: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No news items.")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		settings := prefs.LoadSettings(prefsStore)
		shown := 0
		for _, item := range items {
			if item.Read && !all {
				continue
			}
			shown++

			marker := bold("●")
			if item.Read {
				marker = faint("○")
			}
			date := ""
			if item.DatePublished != nil {
				date = item.DatePublished.Format(config.DateFormatShort)
			}
			fmt.Printf("%s %-6d %s %s\n", marker, item.ID, item.Title(settings.Locale), faint(date))
		}

		if shown == 0 {
			fmt.Println("No unread news items. Use --all to include read ones.")
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Bool("all", false, "include read items")
	newsCmd.Flags().Int64("device", 0, "device id (default: persisted selection)")
	newsCmd.Flags().Int64("method", 0, "update method id (default: persisted selection)")
	rootCmd.AddCommand(newsCmd)
}
