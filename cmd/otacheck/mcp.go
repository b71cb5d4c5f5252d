// ABOUTME: MCP command serving update and news tools over stdio
// ABOUTME: Lets AI agents check for updates and browse cached news

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol server on stdio exposing otacheck's
update check, server status, and news tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcp.NewServer(eng, newsStore)
		if err := srv.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
