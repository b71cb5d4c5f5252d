// ABOUTME: Mark-read command for news items
// ABOUTME: Toggles the local read flag and reports the read to the server

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var markreadCmd = &cobra.Command{
	Use:   "markread <item-id>",
	Short: "Mark a news item as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id: %s", args[0])
		}
		if err := eng.MarkNewsRead(context.Background(), id); err != nil {
			return fmt.Errorf("failed to mark as read: %w", err)
		}
		fmt.Printf("Marked %d as read\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(markreadCmd)
}
