package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rejseplanenmcp/pkg/version"
)

// ServerInfo is the payload of get_server_info.
type ServerInfo struct {
	ServerName  string   `json:"server_name"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	GoVersion   string   `json:"go_version"`
	APIBase     string   `json:"api_base"`
	Transport   string   `json:"transport"`
	Tools       []string `json:"tools"`
	Description string   `json:"description"`
}

// GetServerInfoTool returns a tool definition for server metadata
func GetServerInfoTool() mcp.Tool {
	return mcp.NewTool(ToolGetServerInfo,
		mcp.WithDescription("Get information about this MCP server including version, environment and available tools."),
	)
}

// ServerInfo reports static server metadata. It makes no network call.
func (r *Registry) ServerInfo() ServerInfo {
	return ServerInfo{
		ServerName:  version.Name,
		Version:     version.BuildVersion,
		Environment: r.cfg.Environment,
		GoVersion:   version.GoVersion,
		APIBase:     r.client.BaseURL(),
		Transport:   r.cfg.TransportDescription(),
		Tools:       ToolNames(),
		Description: "MCP server for Danish public transportation via the Rejseplanen.dk API",
	}
}

// HandleGetServerInfo implements get_server_info
func (r *Registry) HandleGetServerInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(r.logger.With("tool", ToolGetServerInfo), r.ServerInfo())
}
