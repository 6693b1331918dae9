// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Prompt names
const (
	JourneyPlanning        = "journey_planning"
	DepartureBoardExamples = "departure_board_examples"
	NearbyStopsExamples    = "nearby_stops_examples"
)

// RegisterJourneyPrompts registers the journey-planning prompts with the MCP server
func RegisterJourneyPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt(JourneyPlanning,
		mcp.WithPromptDescription("Instructions for planning Danish public transport journeys with the Rejseplanen tools"),
	), JourneyPlanningHandler)

	s.AddPrompt(mcp.NewPrompt(DepartureBoardExamples,
		mcp.WithPromptDescription("Examples of departure_board queries"),
	), DepartureBoardExamplesHandler)

	s.AddPrompt(mcp.NewPrompt(NearbyStopsExamples,
		mcp.WithPromptDescription("Examples of nearby_stops queries"),
	), NearbyStopsExamplesHandler)
}

func assistantPrompt(title, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(title, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(text)),
	})
}

// JourneyPlanningHandler returns the main prompt for the journey tools
func JourneyPlanningHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return assistantPrompt("Journey Planning Guidelines", `You have access to tools for Danish public transport via Rejseplanen.
When using these tools:

1. Trips and departure boards need location IDs. Look them up first with location_search,
   e.g. "København H" or "Aarhus H", and use the "id" field of the best match.
2. Call trip_search with origin_id and dest_id. Leave date and time out to travel now.
3. Dates are DD.MM.YY (e.g. "24.12.25") and times are HH:MM in 24-hour format (e.g. "07:45").
4. To avoid a means of transport set use_train, use_bus, use_metro or use_ferry to false.
5. If the user only knows a position, call nearby_stops with latitude and longitude
   and use a returned stop id with departure_board.

ERROR HANDLING GUIDELINES:
1. InvalidArgument errors mean the request was rejected before contacting Rejseplanen. Fix the argument named in the message.
2. UpstreamTimeoutError and UpstreamConnectionError are temporary. Try once more later.
3. UpstreamHTTPError with status 400 usually means a wrong ID or date format.`), nil
}

// DepartureBoardExamplesHandler returns examples for departure_board
func DepartureBoardExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return assistantPrompt("Departure Board Examples", `EXAMPLES OF EFFECTIVE DEPARTURE_BOARD USAGE:

User: "When does the next train leave Odense?"
AI: *uses location_search with "Odense St", then departure_board with the station id*

User: "What leaves København H tomorrow morning at 8?"
AI: *uses departure_board with station_id "008600626", date set to tomorrow as DD.MM.YY and time "08:00"*`), nil
}

// NearbyStopsExamplesHandler returns examples for nearby_stops
func NearbyStopsExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return assistantPrompt("Nearby Stops Examples", `EXAMPLES OF EFFECTIVE NEARBY_STOPS USAGE:

User: "Which stops are close to 55.6761, 12.5683?"
AI: *uses nearby_stops with latitude: 55.6761, longitude: 12.5683*

User: "Find up to 5 stops within 300 meters of Aarhus Rådhus"
AI: *uses nearby_stops with latitude: 56.1530, longitude: 10.2036, max_radius: 300, max_number: 5*

NOTES:
1. Latitude must be between -90 and 90 and longitude between -180 and 180.
2. max_radius above 10000 meters and max_number above 50 are capped, not rejected.`), nil
}
