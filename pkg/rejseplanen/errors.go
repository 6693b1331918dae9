package rejseplanen

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is matched by every validation failure, so callers can
// tell rejected input apart from upstream failures with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 4096

// ArgumentError reports caller input that failed a precondition.
// No network call has been made when it is returned.
type ArgumentError struct {
	Field   string // argument name as exposed to callers
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidArgument) hold for any ArgumentError.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// TimeoutError reports an upstream call that ran for the full timeout.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to Rejseplanen API timed out after %g seconds", e.Timeout.Seconds())
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ConnectionError reports a network-level failure other than a timeout.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("Rejseplanen API request failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response from the upstream API.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       string // truncated to maxErrorBody bytes
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Rejseplanen API returned HTTP %d for %s", e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("Rejseplanen API returned HTTP %d for %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// ParseError reports an upstream body that is not valid JSON.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind names the error category of err, or "" for errors outside the taxonomy.
func Kind(err error) string {
	var (
		argErr  *ArgumentError
		toErr   *TimeoutError
		connErr *ConnectionError
		httpErr *HTTPError
		jsonErr *ParseError
	)
	switch {
	case errors.As(err, &argErr):
		return "InvalidArgument"
	case errors.As(err, &toErr):
		return "UpstreamTimeoutError"
	case errors.As(err, &connErr):
		return "UpstreamConnectionError"
	case errors.As(err, &httpErr):
		return "UpstreamHTTPError"
	case errors.As(err, &jsonErr):
		return "ResponseParseError"
	default:
		return ""
	}
}
