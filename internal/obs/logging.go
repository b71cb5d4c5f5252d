// ABOUTME: Observability utilities: structured logger construction
// ABOUTME: Long-running surfaces log JSON; CLI commands log text to stderr

package obs

import (
	"log/slog"
	"os"
)

// NewLogger builds a structured text logger writing to stderr, used by CLI
// commands for background warnings that should not pollute stdout.
func NewLogger() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	return slog.New(h)
}

// NewJSONLogger builds a JSON logger at info level for long-running surfaces
// such as the MCP server.
func NewJSONLogger() *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h)
}
