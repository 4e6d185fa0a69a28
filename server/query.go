package server

import (
	"strings"

	"github.com/radiation/subway-mapper/graph"
)

// QueryError is a client error reported as HTTP 400
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type routeQuery struct {
	from, to graph.StopID
	format   string
}

// parameter names are matched case-insensitively
func normalizeParams(params map[string][]string) map[string]string {
	m := map[string]string{}
	for k, v := range params {
		if len(v) > 0 {
			m[strings.ToLower(k)] = strings.TrimSpace(v[0])
		}
	}
	return m
}

func parseRouteQuery(params map[string][]string) (routeQuery, error) {
	m := normalizeParams(params)
	if m["from"] == "" {
		return routeQuery{}, &QueryError{Msg: "You must provide a from stop id."}
	}
	if m["to"] == "" {
		return routeQuery{}, &QueryError{Msg: "You must provide a to stop id."}
	}
	format := strings.ToLower(m["format"])
	switch format {
	case "":
		format = "json"
	case "json", "text":
	default:
		return routeQuery{}, &QueryError{Msg: "Unsupported format: " + m["format"] + ". Use json or text."}
	}
	return routeQuery{from: graph.StopID(m["from"]), to: graph.StopID(m["to"]), format: format}, nil
}
