// ABOUTME: MCP server implementation for otacheck
// ABOUTME: Exposes update, status, and news tools for AI agents over stdio

package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/nvdw/otacheck/internal/engine"
	"github.com/nvdw/otacheck/internal/storage"
)

// Server wraps the MCP server with otacheck-specific context
type Server struct {
	mcpServer *server.MCPServer
	engine    *engine.Engine
	news      storage.Store
}

// NewServer creates a new MCP server instance
func NewServer(eng *engine.Engine, news storage.Store) *Server {
	s := &Server{
		engine: eng,
		news:   news,
	}

	s.mcpServer = server.NewMCPServer(
		"otacheck",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
