package formatter

import (
	"encoding/json"

	"github.com/radiation/subway-mapper/graph"
	"github.com/radiation/subway-mapper/pathfind"
	"github.com/radiation/subway-mapper/utils"
)

// RouteBadge is a route serving a stop, as shown on station signage
type RouteBadge struct {
	RouteID   string `json:"routeId"`
	ShortName string `json:"shortName,omitempty"`
	LongName  string `json:"longName,omitempty"`
	Color     string `json:"color,omitempty"`
}

// RouteStop is one stop on a returned route
type RouteStop struct {
	StopID string       `json:"stopId"`
	Name   string       `json:"name"`
	Lat    *float64     `json:"lat,omitempty"`
	Lon    *float64     `json:"lon,omitempty"`
	Routes []RouteBadge `json:"routes,omitempty"`
}

// RouteResponse is the JSON document returned for a route search
type RouteResponse struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	Found        bool        `json:"found"`
	TotalSeconds int64       `json:"totalSeconds"`
	Duration     string      `json:"duration,omitempty"`
	Stops        []RouteStop `json:"stops"`
}

// RoutesFunc lists the routes serving a stop
type RoutesFunc func(graph.StopID) []RouteBadge

// CoordFunc resolves a stop's position; ok is false when unknown
type CoordFunc func(graph.StopID) (lat, lon float64, ok bool)

type jsonOptions struct {
	routes RoutesFunc
	coords CoordFunc
}

type JSONOption func(*jsonOptions)

// WithRoutes attaches route badges to every stop
func WithRoutes(f RoutesFunc) JSONOption {
	return func(o *jsonOptions) { o.routes = f }
}

// WithCoords attaches lat/lon to every stop with a known position
func WithCoords(f CoordFunc) JSONOption {
	return func(o *jsonOptions) { o.coords = f }
}

// JSON builds the RouteResponse for a search from -> to.
// Unreachable results carry found=false, zero seconds and no stops.
func JSON(from, to graph.StopID, res pathfind.Result, names NameFunc, opts ...JSONOption) RouteResponse {
	var o jsonOptions
	for _, opt := range opts {
		opt(&o)
	}

	resp := RouteResponse{
		From:  string(from),
		To:    string(to),
		Stops: []RouteStop{},
	}
	if !res.Found() {
		return resp
	}
	resp.Found = true
	resp.TotalSeconds = res.Cost
	resp.Duration = utils.HumanDuration(res.Cost)
	for _, id := range res.Path {
		stop := RouteStop{StopID: string(id), Name: displayName(names, id)}
		if o.coords != nil {
			if lat, lon, ok := o.coords(id); ok {
				stop.Lat, stop.Lon = &lat, &lon
			}
		}
		if o.routes != nil {
			stop.Routes = o.routes(id)
		}
		resp.Stops = append(resp.Stops, stop)
	}
	return resp
}

// BuildJSON serializes a RouteResponse
func BuildJSON(resp RouteResponse) []byte {
	b, _ := json.Marshal(resp)
	return b
}
