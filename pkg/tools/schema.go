package tools

import (
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
)

// ErrorResponse is used for consistent error reporting
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// jsonResult encodes v as the text content of a successful result.
func jsonResult(logger *slog.Logger, v any) (*mcp.CallToolResult, error) {
	resultBytes, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		return ErrorResponse("Failed to generate result"), nil
	}
	return mcp.NewToolResultText(string(resultBytes)), nil
}

// failure logs err and turns it into an error result. Rejected input is
// logged at debug level, upstream failures as warnings.
func failure(logger *slog.Logger, err error) *mcp.CallToolResult {
	apiErr := FromError(err)
	if apiErr.Kind == "InvalidArgument" {
		logger.Debug("rejected arguments", "error", err)
	} else {
		logger.Warn("tool call failed", "kind", apiErr.Kind, "error", err)
	}
	return ErrorWithGuidance(apiErr)
}

// requireFloat reads a mandatory numeric argument. Absent or non-numeric
// values are rejected rather than read as 0, which is a valid coordinate.
func requireFloat(req mcp.CallToolRequest, name string) (float64, error) {
	if v, ok := req.GetArguments()[name]; !ok || v == nil {
		return 0, &rejseplanen.ArgumentError{Field: name, Message: name + " is required"}
	}
	v, err := req.RequireFloat(name)
	if err != nil {
		return 0, &rejseplanen.ArgumentError{Field: name, Message: name + " must be a number"}
	}
	return v, nil
}

// optionalFloat reads a numeric argument, falling back to def when absent.
func optionalFloat(req mcp.CallToolRequest, name string, def float64) (float64, error) {
	if v, ok := req.GetArguments()[name]; !ok || v == nil {
		return def, nil
	}
	return requireFloat(req, name)
}
