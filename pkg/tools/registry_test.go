package tools

import (
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/rejseplanenmcp/pkg/config"
	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
	"github.com/NERVsystems/rejseplanenmcp/pkg/testutil"
)

func TestGetToolDefinitions(t *testing.T) {
	cfg, err := config.FromMap(nil)
	require.NoError(t, err)
	r := NewRegistry(testutil.DiscardLogger(), rejseplanen.NewClient(), cfg)

	defs := r.GetToolDefinitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
		assert.Equal(t, def.Name, def.Tool.Name)
		assert.NotEmpty(t, def.Description)
		assert.NotEmpty(t, def.Tool.Description)
		assert.NotNil(t, def.Handler)
	}
	assert.Equal(t, ToolNames(), names)
}

func TestToolSchemas(t *testing.T) {
	assert.ElementsMatch(t, []string{"query"}, LocationSearchTool().InputSchema.Required)
	assert.ElementsMatch(t, []string{"origin_id", "dest_id"}, TripSearchTool().InputSchema.Required)
	assert.ElementsMatch(t, []string{"station_id"}, DepartureBoardTool().InputSchema.Required)
	assert.ElementsMatch(t, []string{"latitude", "longitude"}, NearbyStopsTool().InputSchema.Required)
	assert.Empty(t, GetServerInfoTool().InputSchema.Required)

	props := TripSearchTool().InputSchema.Properties
	for _, name := range []string{"date", "time", "use_train", "use_bus", "use_metro", "use_ferry"} {
		assert.Contains(t, props, name)
	}
}

func TestRegisterTools(t *testing.T) {
	cfg, err := config.FromMap(nil)
	require.NoError(t, err)
	logger, buf := testutil.CaptureLogger()
	r := NewRegistry(logger, rejseplanen.NewClient(), cfg)

	srv := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(false))
	r.RegisterTools(srv)

	for _, name := range ToolNames() {
		assert.Contains(t, buf.String(), "name="+name)
	}
}
