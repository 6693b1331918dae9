package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
)

// LocationSearchTool returns a tool definition for searching locations by name
func LocationSearchTool() mcp.Tool {
	return mcp.NewTool(ToolLocationSearch,
		mcp.WithDescription("Search for stations, stops and addresses in Denmark by name. "+
			"Returns location IDs needed for trip_search and departure_board."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description(`Location or station name, e.g. "København H" or "Aarhus H"`),
		),
	)
}

// HandleLocationSearch implements location_search
func (r *Registry) HandleLocationSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", ToolLocationSearch)

	q := rejseplanen.LocationQuery{Query: mcp.ParseString(req, "query", "")}
	result, err := r.client.LocationSearch(ctx, q)
	if err != nil {
		return failure(logger, err), nil
	}
	return jsonResult(logger, result)
}

// TripSearchTool returns a tool definition for journey planning
func TripSearchTool() mcp.Tool {
	return mcp.NewTool(ToolTripSearch,
		mcp.WithDescription("Search for public transport trips between two locations in Denmark. "+
			"Returns journey options with departure and arrival times, changes and legs."),
		mcp.WithString("origin_id",
			mcp.Required(),
			mcp.Description("Origin location ID (from location_search)"),
		),
		mcp.WithString("dest_id",
			mcp.Required(),
			mcp.Description("Destination location ID (from location_search)"),
		),
		mcp.WithString("date",
			mcp.Description("Date in DD.MM.YY format (defaults to today)"),
		),
		mcp.WithString("time",
			mcp.Description("Time in HH:MM format (defaults to now)"),
		),
		mcp.WithBoolean("use_train",
			mcp.Description("Include trains"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("use_bus",
			mcp.Description("Include buses"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("use_metro",
			mcp.Description("Include metro"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("use_ferry",
			mcp.Description("Include ferries"),
			mcp.DefaultBool(true),
		),
	)
}

// HandleTripSearch implements trip_search
func (r *Registry) HandleTripSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", ToolTripSearch)

	q := rejseplanen.TripQuery{
		OriginID: mcp.ParseString(req, "origin_id", ""),
		DestID:   mcp.ParseString(req, "dest_id", ""),
		Date:     mcp.ParseString(req, "date", ""),
		Time:     mcp.ParseString(req, "time", ""),
		Modes: rejseplanen.TransportModes{
			Train: mcp.ParseBoolean(req, "use_train", true),
			Bus:   mcp.ParseBoolean(req, "use_bus", true),
			Metro: mcp.ParseBoolean(req, "use_metro", true),
			Ferry: mcp.ParseBoolean(req, "use_ferry", true),
		},
	}
	result, err := r.client.TripSearch(ctx, q)
	if err != nil {
		return failure(logger, err), nil
	}
	return jsonResult(logger, result)
}

// DepartureBoardTool returns a tool definition for station departure boards
func DepartureBoardTool() mcp.Tool {
	return mcp.NewTool(ToolDepartureBoard,
		mcp.WithDescription("Get upcoming departures from a station or stop, "+
			"with lines, directions, scheduled and real-time times and tracks."),
		mcp.WithString("station_id",
			mcp.Required(),
			mcp.Description("Station or stop ID (from location_search or nearby_stops)"),
		),
		mcp.WithString("date",
			mcp.Description("Date in DD.MM.YY format (defaults to today)"),
		),
		mcp.WithString("time",
			mcp.Description("Time in HH:MM format (defaults to now)"),
		),
	)
}

// HandleDepartureBoard implements departure_board
func (r *Registry) HandleDepartureBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", ToolDepartureBoard)

	q := rejseplanen.DepartureQuery{
		StationID: mcp.ParseString(req, "station_id", ""),
		Date:      mcp.ParseString(req, "date", ""),
		Time:      mcp.ParseString(req, "time", ""),
	}
	result, err := r.client.DepartureBoard(ctx, q)
	if err != nil {
		return failure(logger, err), nil
	}
	return jsonResult(logger, result)
}
