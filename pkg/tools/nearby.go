package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rejseplanenmcp/pkg/geo"
	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
)

// NearbyStopsTool returns a tool definition for finding stops around a coordinate
func NearbyStopsTool() mcp.Tool {
	return mcp.NewTool(ToolNearbyStops,
		mcp.WithDescription("Find public transport stops near a GPS coordinate, "+
			"with stop IDs usable in departure_board and distances in meters."),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude, e.g. 55.6761 for Copenhagen"),
			mcp.Min(geo.MinLatitude),
			mcp.Max(geo.MaxLatitude),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude, e.g. 12.5683 for Copenhagen"),
			mcp.Min(geo.MinLongitude),
			mcp.Max(geo.MaxLongitude),
		),
		mcp.WithNumber("max_radius",
			mcp.Description(fmt.Sprintf("Search radius in meters (max %d, larger values are capped)", rejseplanen.MaxRadiusLimit)),
			mcp.DefaultNumber(rejseplanen.DefaultMaxRadius),
			mcp.Min(1),
		),
		mcp.WithNumber("max_number",
			mcp.Description(fmt.Sprintf("Maximum number of stops to return (max %d, larger values are capped)", rejseplanen.MaxNumberLimit)),
			mcp.DefaultNumber(rejseplanen.DefaultMaxNumber),
			mcp.Min(1),
		),
	)
}

// HandleNearbyStops implements nearby_stops
func (r *Registry) HandleNearbyStops(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", ToolNearbyStops)

	lat, err := requireFloat(req, "latitude")
	if err != nil {
		return failure(logger, err), nil
	}
	lon, err := requireFloat(req, "longitude")
	if err != nil {
		return failure(logger, err), nil
	}
	radius, err := optionalFloat(req, "max_radius", rejseplanen.DefaultMaxRadius)
	if err != nil {
		return failure(logger, err), nil
	}
	number, err := optionalFloat(req, "max_number", rejseplanen.DefaultMaxNumber)
	if err != nil {
		return failure(logger, err), nil
	}

	q := rejseplanen.NearbyQuery{
		Location:  geo.Location{Latitude: lat, Longitude: lon},
		MaxRadius: capLimit(radius, rejseplanen.MaxRadiusLimit),
		MaxNumber: capLimit(number, rejseplanen.MaxNumberLimit),
	}
	result, err := r.client.NearbyStops(ctx, q)
	if err != nil {
		return failure(logger, err), nil
	}
	return jsonResult(logger, result)
}

// capLimit converts a numeric argument to int, capping it at limit first so
// out-of-range floats never reach the conversion. Values below 1 stay below 1
// and are rejected by the query.
func capLimit(v float64, limit int) int {
	return int(max(min(v, float64(limit)), 0))
}
