package graph

import (
	"sort"
	"time"
)

// StopID identifies a stop (GTFS stop_id, e.g. "A27N")
type StopID string

// StopVisit is a single stop reached by a vehicle at a point in time
type StopVisit struct {
	StopID  StopID    `json:"stop_id"`
	Arrival time.Time `json:"arrival_time"`
}

// TripRecord is one vehicle run; Visits are in traversal order
type TripRecord struct {
	TripID  string      `json:"trip_id,omitempty"`
	RouteID string      `json:"route_id,omitempty"`
	Visits  []StopVisit `json:"stops"`
}

// TransferRecord is a walkable connection between two stops
type TransferRecord struct {
	From       StopID
	To         StopID
	MinSeconds int64
}

// Edge is an outgoing connection with its weight in whole seconds
type Edge struct {
	To      StopID
	Seconds int64
}

// Stats summarizes what Build kept and discarded
type Stats struct {
	Segments          int // consecutive visit pairs examined
	DiscardedSegments int // non-positive durations
	CollapsedSegments int // duplicates folded into a faster edge
	Transfers         int
	DroppedTransfers  int // source stop had no trip edge
}

// Graph is an immutable adjacency structure keyed by origin stop.
// A stop that never appears as an origin has no entry; Neighbors returns nil for it.
type Graph struct {
	adj   map[StopID][]Edge
	edges int
	stats Stats
}

// Neighbors returns the outgoing edges of a stop, nil if it has none.
// The returned slice must not be modified.
func (g *Graph) Neighbors(s StopID) []Edge {
	if g == nil {
		return nil
	}
	return g.adj[s]
}

// HasStop reports whether s is the origin of at least one edge
func (g *Graph) HasStop(s StopID) bool {
	if g == nil {
		return false
	}
	_, ok := g.adj[s]
	return ok
}

// Len returns the number of origin stops
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.adj)
}

// EdgeCount returns the number of edges, transfers included
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edges
}

// Stats returns the counters recorded while building g
func (g *Graph) Stats() Stats {
	if g == nil {
		return Stats{}
	}
	return g.stats
}

// Stops returns all origin stops in sorted order
func (g *Graph) Stops() []StopID {
	if g == nil {
		return nil
	}
	out := make([]StopID, 0, len(g.adj))
	for s := range g.adj {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
