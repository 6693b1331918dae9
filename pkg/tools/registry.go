package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/rejseplanenmcp/pkg/config"
	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
)

// Tool names
const (
	ToolLocationSearch = "location_search"
	ToolTripSearch     = "trip_search"
	ToolDepartureBoard = "departure_board"
	ToolNearbyStops    = "nearby_stops"
	ToolGetServerInfo  = "get_server_info"
)

// ToolNames lists every tool the server exposes, in registration order.
func ToolNames() []string {
	return []string{
		ToolLocationSearch,
		ToolTripSearch,
		ToolDepartureBoard,
		ToolNearbyStops,
		ToolGetServerInfo,
	}
}

// Registry holds all MCP tool registrations for the Rejseplanen service.
type Registry struct {
	logger *slog.Logger
	client *rejseplanen.Client
	cfg    *config.Config
}

// NewRegistry creates a new MCP tool registry.
func NewRegistry(logger *slog.Logger, client *rejseplanen.Client, cfg *config.Config) *Registry {
	return &Registry{
		logger: logger,
		client: client,
		cfg:    cfg,
	}
}

// ToolDefinition represents a Rejseplanen MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all Rejseplanen MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// Lookup
		{
			Name:        ToolLocationSearch,
			Description: "Search for stations, stops and addresses by name",
			Tool:        LocationSearchTool(),
			Handler:     r.HandleLocationSearch,
		},

		// Journey planning
		{
			Name:        ToolTripSearch,
			Description: "Search for trips between two locations",
			Tool:        TripSearchTool(),
			Handler:     r.HandleTripSearch,
		},
		{
			Name:        ToolDepartureBoard,
			Description: "Get upcoming departures from a station",
			Tool:        DepartureBoardTool(),
			Handler:     r.HandleDepartureBoard,
		},
		{
			Name:        ToolNearbyStops,
			Description: "Find stops near a coordinate",
			Tool:        NearbyStopsTool(),
			Handler:     r.HandleNearbyStops,
		},

		// Metadata
		{
			Name:        ToolGetServerInfo,
			Description: "Get server version, environment and capabilities",
			Tool:        GetServerInfoTool(),
			Handler:     r.HandleGetServerInfo,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
