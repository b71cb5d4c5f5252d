// ABOUTME: Mark-unread command for news items
// ABOUTME: Clears the local read flag only; the server is not informed

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var markunreadCmd = &cobra.Command{
	Use:   "markunread <item-id>",
	Short: "Mark a news item as unread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id: %s", args[0])
		}
		if err := newsStore.ToggleRead(id, false); err != nil {
			return fmt.Errorf("failed to mark as unread: %w", err)
		}
		fmt.Printf("Marked %d as unread\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markunreadCmd)
}
