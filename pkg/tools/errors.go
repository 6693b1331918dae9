// Package tools provides the Rejseplanen MCP tool implementations.
package tools

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
)

// APIError describes a failed tool call with information to help users
// recover.
type APIError struct {
	Kind        string // error category, e.g. "InvalidArgument"
	Service     string // "Rejseplanen" or "Validation"
	StatusCode  int    // HTTP status code, when there is one
	Message     string
	Recoverable bool
	Guidance    string
}

// Error implements the error interface and provides a formatted error message.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Kind == "UpstreamHTTPError" {
		msg = fmt.Sprintf("%s: %s API error (%d): %s", e.Kind, e.Service, e.StatusCode, e.Message)
	}
	if e.Guidance != "" {
		msg += ". " + e.Guidance
	}
	return msg
}

// Common error guidance messages
const (
	GuidanceInvalidArgument = "Please correct the parameters and try again."
	GuidanceTimeout         = "The Rejseplanen API did not answer in time. Try again shortly or narrow the search."
	GuidanceNetworkError    = "Check your internet connection and try again."
	GuidanceDataError       = "The Rejseplanen API returned data that could not be read. Try again later."
	GuidanceGeneral         = "Please try again later or modify your request parameters."
)

// NewAPIError creates a new APIError with appropriate guidance based on status code.
func NewAPIError(service string, statusCode int, message, guidance string) *APIError {
	if guidance == "" {
		switch statusCode {
		case http.StatusTooManyRequests:
			guidance = "Rate limit exceeded. Please try again in a few moments."
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			guidance = GuidanceTimeout
		case http.StatusBadRequest:
			guidance = "The request was invalid. Check IDs, date (DD.MM.YY) and time (HH:MM) and try again."
		case http.StatusNotFound:
			guidance = "The requested location or station was not found. Use location_search to look up valid IDs."
		case http.StatusInternalServerError:
			guidance = "The server encountered an error. This is likely temporary, please try again later."
		case http.StatusServiceUnavailable:
			guidance = "The service is temporarily unavailable. Please try again later."
		default:
			guidance = GuidanceGeneral
		}
	}

	return &APIError{
		Kind:        "UpstreamHTTPError",
		Service:     service,
		StatusCode:  statusCode,
		Message:     message,
		Recoverable: statusCode != http.StatusBadRequest,
		Guidance:    guidance,
	}
}

// FromError maps a client error onto an APIError. Errors outside the
// rejseplanen taxonomy are reported as internal errors.
func FromError(err error) *APIError {
	var (
		argErr  *rejseplanen.ArgumentError
		httpErr *rejseplanen.HTTPError
	)
	switch {
	case errors.As(err, &argErr):
		return &APIError{
			Kind:        rejseplanen.Kind(err),
			Service:     "Validation",
			StatusCode:  http.StatusBadRequest,
			Message:     argErr.Message,
			Recoverable: true,
			Guidance:    GuidanceInvalidArgument,
		}
	case errors.As(err, &httpErr):
		return NewAPIError("Rejseplanen", httpErr.StatusCode, err.Error(), "")
	}

	apiErr := &APIError{
		Kind:        rejseplanen.Kind(err),
		Service:     "Rejseplanen",
		Message:     err.Error(),
		Recoverable: true,
	}
	switch apiErr.Kind {
	case "UpstreamTimeoutError":
		apiErr.StatusCode = http.StatusGatewayTimeout
		apiErr.Guidance = GuidanceTimeout
	case "UpstreamConnectionError":
		apiErr.StatusCode = http.StatusBadGateway
		apiErr.Guidance = GuidanceNetworkError
	case "ResponseParseError":
		apiErr.StatusCode = http.StatusBadGateway
		apiErr.Guidance = GuidanceDataError
	default:
		apiErr.Kind = "InternalError"
		apiErr.StatusCode = http.StatusInternalServerError
		apiErr.Guidance = GuidanceGeneral
	}
	return apiErr
}

// ErrorWithGuidance returns a properly formatted error response with user guidance.
func ErrorWithGuidance(err *APIError) *mcp.CallToolResult {
	errorText := fmt.Sprintf("%s: %s\n\nGuidance: %s", err.Kind, err.Message, err.Guidance)
	return mcp.NewToolResultError(errorText)
}
