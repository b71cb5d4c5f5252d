// ABOUTME: Read command for viewing a news item
// ABOUTME: Displays the full item with markdown rendering and marks it as read

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/config"
	"github.com/nvdw/otacheck/internal/prefs"
)

var readCmd = &cobra.Command{
	Use:   "read <item-id>",
	Short: "Read a news item",
	Long:  "Display the full content of a news item and mark it as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id: %s", args[0])
		}
		noMark, _ := cmd.Flags().GetBool("no-mark")

		item, err := eng.FetchNewsItem(context.Background(), id)
		if err != nil {
			return fmt.Errorf("news item not found: %d", id)
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		settings := prefs.LoadSettings(prefsStore)

		fmt.Println(strings.Repeat("─", config.SeparatorWidth))
		fmt.Printf("%s\n", bold(item.Title(settings.Locale)))
		if subtitle := item.Subtitle(settings.Locale); subtitle != "" {
			fmt.Printf("%s\n", faint(subtitle))
		}
		if item.AuthorName != "" {
			fmt.Printf("%s %s\n", faint("Author:"), item.AuthorName)
		}
		if item.DatePublished != nil {
			fmt.Printf("%s %s\n", faint("Published:"), item.DatePublished.Format(config.DateFormatShort))
		}
		fmt.Println(strings.Repeat("─", config.SeparatorWidth))

		text := item.Text(settings.Locale)
		if text != "" {
			rendered, err := glamour.Render(text, "auto")
			if err != nil {
				fmt.Println(text)
			} else {
				fmt.Print(rendered)
			}
		}

		if !noMark {
			if err := eng.MarkNewsRead(context.Background(), id); err != nil {
				return fmt.Errorf("failed to mark as read: %w", err)
			}
		}
		return nil
	},
}

func init() {
	readCmd.Flags().Bool("no-mark", false, "do not mark the item as read")
	rootCmd.AddCommand(readCmd)
}
