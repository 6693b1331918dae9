package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/rejseplanenmcp/pkg/config"
	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
	"github.com/NERVsystems/rejseplanenmcp/pkg/testutil"
)

func newCallRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func newTestRegistry(t *testing.T, up *testutil.Upstream, opts ...rejseplanen.Option) *Registry {
	t.Helper()
	cfg, err := config.FromMap(map[string]string{"ENVIRONMENT": "test"})
	require.NoError(t, err)

	base := []rejseplanen.Option{
		rejseplanen.WithBaseURL(up.URL),
		rejseplanen.WithLogger(testutil.DiscardLogger()),
	}
	client := rejseplanen.NewClient(append(base, opts...)...)
	return NewRegistry(testutil.DiscardLogger(), client, cfg)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatal("no text content in result")
	return ""
}

// call runs the named tool through its registered handler.
func call(t *testing.T, r *Registry, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	for _, def := range r.GetToolDefinitions() {
		if def.Name == name {
			result, err := def.Handler(context.Background(), newCallRequest(name, args))
			require.NoError(t, err)
			return result
		}
	}
	t.Fatalf("tool %q not registered", name)
	return nil
}

func onlyQuery(t *testing.T, up *testutil.Upstream, path string) url.Values {
	t.Helper()
	reqs := up.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, path, reqs[0].Path)
	return reqs[0].Query()
}

func TestLocationSearch(t *testing.T) {
	body := `{"LocationList":{"StopLocation":[{"id":"008600626","name":"København H","x":"12565562","y":"55673063"}]}}`
	up := testutil.NewUpstream(t, testutil.JSONResponder(http.StatusOK, body))
	r := newTestRegistry(t, up)

	result := call(t, r, ToolLocationSearch, map[string]any{"query": "  København H "})
	require.False(t, result.IsError, resultText(t, result))
	assert.JSONEq(t, body, resultText(t, result))

	q := onlyQuery(t, up, "/location")
	assert.Equal(t, "København H", q.Get("input"))
	assert.Equal(t, "json", q.Get("format"))
}

func TestLocationSearchEmpty(t *testing.T) {
	up := testutil.NewUpstream(t, nil)
	r := newTestRegistry(t, up)

	for _, query := range []string{"", "   "} {
		result := call(t, r, ToolLocationSearch, map[string]any{"query": query})
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "InvalidArgument")
	}
	result := call(t, r, ToolLocationSearch, map[string]any{})
	assert.True(t, result.IsError)

	assert.Empty(t, up.Requests(), "validation happens before any network call")
}

func TestTripSearchDefaults(t *testing.T) {
	up := testutil.NewUpstream(t, nil)
	r := newTestRegistry(t, up)

	result := call(t, r, ToolTripSearch, map[string]any{
		"origin_id": "008600626",
		"dest_id":   "008600053",
	})
	require.False(t, result.IsError, resultText(t, result))

	q := onlyQuery(t, up, "/trip")
	assert.Equal(t, url.Values{
		"originId": {"008600626"},
		"destId":   {"008600053"},
		"useTog":   {"1"},
		"useBus":   {"1"},
		"useMetro": {"1"},
		"useFerry": {"1"},
		"format":   {"json"},
	}, q)
}

func TestTripSearchExcludeBus(t *testing.T) {
	up := testutil.NewUpstream(t, nil)
	r := newTestRegistry(t, up)

	result := call(t, r, ToolTripSearch, map[string]any{
		"origin_id": "A",
		"dest_id":   "B",
		"use_bus":   false,
		"date":      "24.12.25",
		"time":      "18:05",
	})
	require.False(t, result.IsError, resultText(t, result))

	q := onlyQuery(t, up, "/trip")
	assert.Equal(t, "0", q.Get("useBus"))
	assert.Equal(t, "1", q.Get("useTog"))
	assert.Equal(t, "1", q.Get("useMetro"))
	assert.Equal(t, "1", q.Get("useFerry"))
	assert.Equal(t, "24.12.25", q.Get("date"))
	assert.Equal(t, "18:05", q.Get("time"))
}

func TestTripSearchMissingDestination(t *testing.T) {
	up := testutil.NewUpstream(t, nil)
	r := newTestRegistry(t, up)

	result := call(t, r, ToolTripSearch, map[string]any{"origin_id": "A", "dest_id": " "})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "dest_id is required")
	assert.Empty(t, up.Requests())
}

func TestDepartureBoard(t *testing.T) {
	up := testutil.NewUpstream(t, testutil.JSONResponder(http.StatusOK, `{"DepartureBoard":{}}`))
	r := newTestRegistry(t, up)

	result := call(t, r, ToolDepartureBoard, map[string]any{"station_id": " 008600626 ", "time": "08:00"})
	require.False(t, result.IsError, resultText(t, result))

	q := onlyQuery(t, up, "/departureBoard")
	assert.Equal(t, "008600626", q.Get("id"))
	assert.Equal(t, "08:00", q.Get("time"))
	assert.False(t, q.Has("date"))

	result = call(t, r, ToolDepartureBoard, map[string]any{"station_id": ""})
	assert.True(t, result.IsError)
	assert.Len(t, up.Requests(), 1)
}

func TestNearbyStops(t *testing.T) {
	tests := []struct {
		name       string
		args       map[string]any
		wantRadius string
		wantNumber string
	}{
		{
			name:       "defaults",
			args:       map[string]any{"latitude": 55.6761, "longitude": 12.5683},
			wantRadius: "1000",
			wantNumber: "10",
		},
		{
			name:       "radius clamped",
			args:       map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_radius": 50000},
			wantRadius: "10000",
			wantNumber: "10",
		},
		{
			name:       "number clamped",
			args:       map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_radius": 500.0, "max_number": 200.0},
			wantRadius: "500",
			wantNumber: "50",
		},
		{
			name:       "huge values clamped",
			args:       map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_radius": 1e20, "max_number": 1e300},
			wantRadius: "10000",
			wantNumber: "50",
		},
		{
			name:       "numeric strings",
			args:       map[string]any{"latitude": "55.6761", "longitude": "12.5683", "max_radius": "250"},
			wantRadius: "250",
			wantNumber: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := testutil.NewUpstream(t, nil)
			r := newTestRegistry(t, up)

			result := call(t, r, ToolNearbyStops, tt.args)
			require.False(t, result.IsError, resultText(t, result))

			q := onlyQuery(t, up, "/stopsNearby")
			assert.Equal(t, "12.5683", q.Get("coordX"))
			assert.Equal(t, "55.6761", q.Get("coordY"))
			assert.Equal(t, tt.wantRadius, q.Get("maxRadius"))
			assert.Equal(t, tt.wantNumber, q.Get("maxNumber"))
			assert.Equal(t, "json", q.Get("format"))
		})
	}
}

func TestNearbyStopsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"latitude out of range", map[string]any{"latitude": 95, "longitude": 12.5683}, "latitude must be between -90 and 90"},
		{"longitude out of range", map[string]any{"latitude": 55, "longitude": 190}, "longitude must be between -180 and 180"},
		{"zero number", map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_number": 0}, "max_number must be at least 1"},
		{"zero radius", map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_radius": 0}, "max_radius must be at least 1 meter"},
		{"missing latitude", map[string]any{"longitude": 12.5683}, "latitude is required"},
		{"null longitude", map[string]any{"latitude": 55.6761, "longitude": nil}, "longitude is required"},
		{"text latitude", map[string]any{"latitude": "north", "longitude": 12.5683}, "latitude must be a number"},
		{"boolean longitude", map[string]any{"latitude": 55.6761, "longitude": true}, "longitude must be a number"},
		{"text radius", map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_radius": "far"}, "max_radius must be a number"},
		{"negative huge number", map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_number": -1e20}, "max_number must be at least 1"},
		{"fractional radius", map[string]any{"latitude": 55.6761, "longitude": 12.5683, "max_radius": 0.5}, "max_radius must be at least 1 meter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := testutil.NewUpstream(t, nil)
			r := newTestRegistry(t, up)

			result := call(t, r, ToolNearbyStops, tt.args)
			require.True(t, result.IsError)
			text := resultText(t, result)
			assert.Contains(t, text, "InvalidArgument")
			assert.Contains(t, text, tt.want)
			assert.Empty(t, up.Requests())
		})
	}
}

func TestUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{"http error", testutil.JSONResponder(http.StatusInternalServerError, `{"error":"R0007"}`), "UpstreamHTTPError"},
		{"not json", testutil.JSONResponder(http.StatusOK, `<xml/>`), "ResponseParseError"},
		{"timeout", testutil.Hang, "UpstreamTimeoutError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := testutil.NewUpstream(t, tt.handler)
			r := newTestRegistry(t, up, rejseplanen.WithTimeout(50*time.Millisecond))

			result := call(t, r, ToolDepartureBoard, map[string]any{"station_id": "8600626"})
			require.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
			assert.Contains(t, resultText(t, result), "Guidance:")
			assert.Len(t, up.Requests(), 1, "no retry")
		})
	}
}

func TestTimeoutAtEveryEndpoint(t *testing.T) {
	calls := []struct {
		tool string
		args map[string]any
	}{
		{ToolLocationSearch, map[string]any{"query": "Odense"}},
		{ToolTripSearch, map[string]any{"origin_id": "A", "dest_id": "B"}},
		{ToolDepartureBoard, map[string]any{"station_id": "1"}},
		{ToolNearbyStops, map[string]any{"latitude": 55.4, "longitude": 10.4}},
	}

	up := testutil.NewUpstream(t, testutil.Hang)
	r := newTestRegistry(t, up, rejseplanen.WithTimeout(30*time.Millisecond))

	for _, c := range calls {
		result := call(t, r, c.tool, c.args)
		require.True(t, result.IsError, c.tool)
		assert.Contains(t, resultText(t, result), "UpstreamTimeoutError", c.tool)
	}
	assert.Len(t, up.Requests(), len(calls))
}

func TestGetServerInfo(t *testing.T) {
	up := testutil.NewUpstream(t, nil)
	r := newTestRegistry(t, up)

	result := call(t, r, ToolGetServerInfo, nil)
	require.False(t, result.IsError)

	var info ServerInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &info))
	assert.Equal(t, "Rejseplanen MCP Server", info.ServerName)
	assert.Equal(t, "test", info.Environment)
	assert.Equal(t, up.URL, info.APIBase)
	assert.Equal(t, "HTTP (Stateless)", info.Transport)
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, []string{
		"location_search", "trip_search", "departure_board", "nearby_stops", "get_server_info",
	}, info.Tools)

	assert.Equal(t, info, r.ServerInfo(), "deterministic")
	assert.Empty(t, up.Requests())
}

func TestGetServerInfoDefaultEnvironment(t *testing.T) {
	cfg, err := config.FromMap(nil)
	require.NoError(t, err)
	r := NewRegistry(testutil.DiscardLogger(), rejseplanen.NewClient(), cfg)

	info := r.ServerInfo()
	assert.Equal(t, "development", info.Environment)
	assert.Equal(t, rejseplanen.DefaultBaseURL, info.APIBase)
}

func TestCapLimit(t *testing.T) {
	assert.Equal(t, 10000, capLimit(1e20, rejseplanen.MaxRadiusLimit))
	assert.Equal(t, 50, capLimit(50, rejseplanen.MaxNumberLimit))
	assert.Equal(t, 7, capLimit(7.9, rejseplanen.MaxNumberLimit))
	assert.Equal(t, 0, capLimit(-1e20, rejseplanen.MaxNumberLimit))
}
