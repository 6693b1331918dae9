package rejseplanen

import (
	"context"
	"strconv"
	"strings"

	"github.com/NERVsystems/rejseplanenmcp/pkg/geo"
)

// Limits for stopsNearby. Values above the maximum are clamped, values
// below 1 are rejected.
const (
	DefaultMaxRadius = 1000
	MaxRadiusLimit   = 10000
	DefaultMaxNumber = 10
	MaxNumberLimit   = 50
)

// LocationQuery searches stations, stops and addresses by name.
type LocationQuery struct {
	Query string `json:"query" validate:"required"`
}

// Params validates q and returns the upstream query parameters.
func (q LocationQuery) Params() (map[string]string, error) {
	q.Query = strings.TrimSpace(q.Query)
	if err := checkArgs(q); err != nil {
		return nil, err
	}
	return map[string]string{"input": q.Query}, nil
}

// TransportModes selects which means of transport a trip may use.
type TransportModes struct {
	Train bool
	Bus   bool
	Metro bool
	Ferry bool
}

// AllModes allows every means of transport.
func AllModes() TransportModes {
	return TransportModes{Train: true, Bus: true, Metro: true, Ferry: true}
}

// TripQuery plans a journey between two location IDs. Date (DD.MM.YY)
// and Time (HH:MM) are optional and default upstream to now.
type TripQuery struct {
	OriginID string `json:"origin_id" validate:"required"`
	DestID   string `json:"dest_id" validate:"required"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Modes    TransportModes
}

// Params validates q and returns the upstream query parameters.
func (q TripQuery) Params() (map[string]string, error) {
	q.OriginID = strings.TrimSpace(q.OriginID)
	q.DestID = strings.TrimSpace(q.DestID)
	if err := checkArgs(q); err != nil {
		return nil, err
	}

	params := map[string]string{
		"originId": q.OriginID,
		"destId":   q.DestID,
		"useTog":   flag(q.Modes.Train),
		"useBus":   flag(q.Modes.Bus),
		"useMetro": flag(q.Modes.Metro),
		"useFerry": flag(q.Modes.Ferry),
	}
	addWhen(params, q.Date, q.Time)
	return params, nil
}

// DepartureQuery asks for the departure board of one station.
type DepartureQuery struct {
	StationID string `json:"station_id" validate:"required"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

// Params validates q and returns the upstream query parameters.
func (q DepartureQuery) Params() (map[string]string, error) {
	q.StationID = strings.TrimSpace(q.StationID)
	if err := checkArgs(q); err != nil {
		return nil, err
	}

	params := map[string]string{"id": q.StationID}
	addWhen(params, q.Date, q.Time)
	return params, nil
}

// NearbyQuery finds stops around a coordinate. MaxRadius is in meters.
type NearbyQuery struct {
	geo.Location
	MaxRadius int `json:"max_radius" validate:"gte=1"`
	MaxNumber int `json:"max_number" validate:"gte=1"`
}

// NewNearbyQuery returns a query around loc with the default radius and
// result count.
func NewNearbyQuery(loc geo.Location) NearbyQuery {
	return NearbyQuery{Location: loc, MaxRadius: DefaultMaxRadius, MaxNumber: DefaultMaxNumber}
}

// Params validates q, clamps the limits and returns the upstream query
// parameters.
func (q NearbyQuery) Params() (map[string]string, error) {
	if err := checkArgs(q); err != nil {
		return nil, err
	}
	q.MaxRadius = min(q.MaxRadius, MaxRadiusLimit)
	q.MaxNumber = min(q.MaxNumber, MaxNumberLimit)

	return map[string]string{
		"coordX":    q.X(),
		"coordY":    q.Y(),
		"maxRadius": strconv.Itoa(q.MaxRadius),
		"maxNumber": strconv.Itoa(q.MaxNumber),
	}, nil
}

// LocationSearch looks up locations matching q.
func (c *Client) LocationSearch(ctx context.Context, q LocationQuery) (any, error) {
	params, err := q.Params()
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, EndpointLocation, params)
}

// TripSearch plans journeys for q.
func (c *Client) TripSearch(ctx context.Context, q TripQuery) (any, error) {
	params, err := q.Params()
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, EndpointTrip, params)
}

// DepartureBoard returns upcoming departures for q.
func (c *Client) DepartureBoard(ctx context.Context, q DepartureQuery) (any, error) {
	params, err := q.Params()
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, EndpointDepartureBoard, params)
}

// NearbyStops returns stops around the coordinate in q.
func (c *Client) NearbyStops(ctx context.Context, q NearbyQuery) (any, error) {
	params, err := q.Params()
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, EndpointStopsNearby, params)
}

func flag(on bool) string {
	if on {
		return "1"
	}
	return "0"
}

// addWhen copies non-empty date and time verbatim.
func addWhen(params map[string]string, date, time string) {
	if date != "" {
		params["date"] = date
	}
	if time != "" {
		params["time"] = time
	}
}
