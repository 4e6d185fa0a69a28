package gtfs

import (
	"sort"

	"github.com/radiation/subway-mapper/graph"
)

// StaticIndex stores the static GTFS reference tables needed around route search
type StaticIndex struct {
	stopNames       map[string]string     // stop_id -> stop_name
	stopParent      map[string]string     // stop_id -> parent_station
	stopCoord       map[string][2]float64 // stop_id -> [lon,lat]
	routeShortNames map[string]string     // route_id -> route_short_name
	routeLongNames  map[string]string     // route_id -> route_long_name
	routeColors     map[string]string     // route_id -> route_color
	transfers       []graph.TransferRecord
}

// NewStaticIndex creates a new empty index
func NewStaticIndex() *StaticIndex {
	return &StaticIndex{
		stopNames:       map[string]string{},
		stopParent:      map[string]string{},
		stopCoord:       map[string][2]float64{},
		routeShortNames: map[string]string{},
		routeLongNames:  map[string]string{},
		routeColors:     map[string]string{},
		transfers:       []graph.TransferRecord{},
	}
}

// StopName returns the stop's name. Platform ids with no row of their own
// (e.g. "A27N") fall back to the parent station: first via parent_station,
// then by trimming a trailing N/S direction suffix.
func (s *StaticIndex) StopName(stopID string) string {
	if s == nil {
		return ""
	}
	if n, ok := s.stopNames[stopID]; ok && n != "" {
		return n
	}
	if p := s.stopParent[stopID]; p != "" {
		if n := s.stopNames[p]; n != "" {
			return n
		}
	}
	if l := len(stopID); l > 1 && (stopID[l-1] == 'N' || stopID[l-1] == 'S') {
		return s.stopNames[stopID[:l-1]]
	}
	return ""
}

// StopCoord returns [lon,lat] for a stop, falling back to the parent station
// the same way StopName does
func (s *StaticIndex) StopCoord(stopID string) ([2]float64, bool) {
	if s == nil {
		return [2]float64{}, false
	}
	if c, ok := s.stopCoord[stopID]; ok {
		return c, true
	}
	if p := s.stopParent[stopID]; p != "" {
		if c, ok := s.stopCoord[p]; ok {
			return c, true
		}
	}
	if l := len(stopID); l > 1 && (stopID[l-1] == 'N' || stopID[l-1] == 'S') {
		c, ok := s.stopCoord[stopID[:l-1]]
		return c, ok
	}
	return [2]float64{}, false
}

// HasStop reports whether stops.txt defines stopID
func (s *StaticIndex) HasStop(stopID string) bool {
	if s == nil {
		return false
	}
	_, ok := s.stopNames[stopID]
	return ok
}

// RouteShortName returns route_short_name, e.g. "A"
func (s *StaticIndex) RouteShortName(routeID string) string {
	if s == nil {
		return ""
	}
	return s.routeShortNames[routeID]
}

func (s *StaticIndex) RouteLongName(routeID string) string {
	if s == nil {
		return ""
	}
	return s.routeLongNames[routeID]
}

// RouteColor returns route_color as hex without '#'
func (s *StaticIndex) RouteColor(routeID string) string {
	if s == nil {
		return ""
	}
	return s.routeColors[routeID]
}

// Transfers returns the transfers.txt rows in file order
func (s *StaticIndex) Transfers() []graph.TransferRecord {
	if s == nil {
		return nil
	}
	return s.transfers
}

// AllStops returns every stop_id, sorted
func (s *StaticIndex) AllStops() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.stopNames))
	for k := range s.stopNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllRoutes returns every route_id, sorted
func (s *StaticIndex) AllRoutes() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.routeShortNames))
	for k := range s.routeShortNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Names adapts the index to a lookup function for rendering
func (s *StaticIndex) Names() func(graph.StopID) string {
	return func(id graph.StopID) string { return s.StopName(string(id)) }
}
