// ABOUTME: MCP tool definitions and handlers for update and news operations
// ABOUTME: Read-only tools over the engine and local news cache

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nvdw/otacheck/internal/models"
)

type CheckUpdateInput struct {
	DeviceID           int64  `json:"device_id"`
	UpdateMethodID     int64  `json:"update_method_id"`
	IncrementalVersion string `json:"incremental_version,omitempty"`
}

type CheckUpdateOutput struct {
	Found   bool               `json:"found"`
	Offline bool               `json:"offline"`
	Update  *models.UpdateData `json:"update,omitempty"`
}

type ServerStatusOutput struct {
	Status                       models.StatusCode `json:"status"`
	LatestAppVersion             string            `json:"latest_app_version"`
	AutomaticInstallationEnabled bool              `json:"automatic_installation_enabled"`
	PushNotificationDelaySeconds int               `json:"push_notification_delay_seconds"`
}

type NewsItemOutput struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	AuthorName    string     `json:"author_name,omitempty"`
	DatePublished *time.Time `json:"date_published,omitempty"`
	Read          bool       `json:"read"`
}

type ListNewsOutput struct {
	Items       []NewsItemOutput `json:"items"`
	Count       int              `json:"count"`
	UnreadCount int              `json:"unread_count"`
}

type ReadNewsItemInput struct {
	ID int64 `json:"id"`
}

type ReadNewsItemOutput struct {
	NewsItemOutput
	Text string `json:"text"`
}

func (s *Server) registerTools() {
	s.registerCheckUpdateTool()
	s.registerServerStatusTool()
	s.registerListNewsTool()
	s.registerReadNewsItemTool()
}

func (s *Server) registerCheckUpdateTool() {
	tool := mcp.Tool{
		Name:        "check_update",
		Description: "Check for a firmware update for a (device, update method) selection. Returns the update metadata if one is known, falling back to the last offline snapshot when the service is unreachable. A missing result means 'unknown', not 'up to date'.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"device_id": map[string]interface{}{
					"type":        "integer",
					"description": "Numeric device id as returned by the devices listing. Example: 4",
				},
				"update_method_id": map[string]interface{}{
					"type":        "integer",
					"description": "Numeric update method id for the device. Example: 2",
				},
				"incremental_version": map[string]interface{}{
					"type":        "string",
					"description": "Optional incremental system version currently installed. Example: 'OnePlus8Oxygen_15.E.20'",
				},
			},
			Required: []string{"device_id", "update_method_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleCheckUpdate)
}

func (s *Server) registerServerStatusTool() {
	tool := mcp.Tool{
		Name:        "server_status",
		Description: "Get the health of the update service. The first call hits the network; later calls return the cached status. UNREACHABLE means the service is down while connectivity works; MAINTENANCE and OUTDATED block normal operation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"refresh": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, bypass the cached status and re-fetch. Example: true",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleServerStatus)
}

func (s *Server) registerListNewsTool() {
	tool := mcp.Tool{
		Name:        "list_news",
		Description: "List locally cached news items from the update service, newest first, with read state. Use read_news_item to fetch the full body of one item.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListNews)
}

func (s *Server) registerReadNewsItemTool() {
	tool := mcp.Tool{
		Name:        "read_news_item",
		Description: "Fetch one news item by id (refreshing the local cache when the service is reachable) and return its full Markdown body.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "News item id. Example: 42",
				},
			},
			Required: []string{"id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleReadNewsItem)
}

func (s *Server) handleCheckUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input CheckUpdateInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	update := s.engine.FetchUpdateData(ctx, input.DeviceID, input.UpdateMethodID, input.IncrementalVersion)
	output := CheckUpdateOutput{
		Found:   update != nil,
		Offline: update != nil && update.ReconstructedOffline,
		Update:  update,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleServerStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input struct {
		Refresh *bool `json:"refresh,omitempty"`
	}
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	useCache := input.Refresh == nil || !*input.Refresh
	status := s.engine.FetchServerStatus(ctx, useCache)
	output := ServerStatusOutput{
		Status:                       status.Status,
		LatestAppVersion:             status.LatestAppVersion,
		AutomaticInstallationEnabled: status.AutomaticInstallationEnabled,
		PushNotificationDelaySeconds: status.PushNotificationDelaySeconds,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListNews(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.news.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	unread, err := s.news.CountUnread()
	if err != nil {
		return nil, fmt.Errorf("failed to count unread: %w", err)
	}

	output := ListNewsOutput{Count: len(items), UnreadCount: unread}
	for _, item := range items {
		output.Items = append(output.Items, NewsItemOutput{
			ID:            item.ID,
			Title:         item.Title(models.LocaleEnglish),
			Subtitle:      item.Subtitle(models.LocaleEnglish),
			AuthorName:    item.AuthorName,
			DatePublished: item.DatePublished,
			Read:          item.Read,
		})
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleReadNewsItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ReadNewsItemInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	item, err := s.engine.FetchNewsItem(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("news item not found: %d", input.ID)
	}

	output := ReadNewsItemOutput{
		NewsItemOutput: NewsItemOutput{
			ID:            item.ID,
			Title:         item.Title(models.LocaleEnglish),
			Subtitle:      item.Subtitle(models.LocaleEnglish),
			AuthorName:    item.AuthorName,
			DatePublished: item.DatePublished,
			Read:          item.Read,
		},
		Text: item.Text(models.LocaleEnglish),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
