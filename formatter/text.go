package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/radiation/subway-mapper/graph"
	"github.com/radiation/subway-mapper/pathfind"
)

// UnknownStop is shown for stops missing from the static tables
const UnknownStop = "Unknown Stop"

// NameFunc resolves a stop id to a display name ("" when unknown)
type NameFunc func(graph.StopID) string

func displayName(names NameFunc, id graph.StopID) string {
	if names == nil {
		return UnknownStop
	}
	if n := names(id); n != "" {
		return n
	}
	return UnknownStop
}

// Text writes the console route report for a search from -> to.
func Text(w io.Writer, from, to graph.StopID, res pathfind.Result, names NameFunc) error {
	var b strings.Builder
	if !res.Found() {
		fmt.Fprintf(&b, "No route found from %s to %s.\n", from, to)
		_, err := io.WriteString(w, b.String())
		return err
	}

	ids := make([]string, len(res.Path))
	for i, id := range res.Path {
		ids[i] = string(id)
	}

	b.WriteString("\n--- Fastest Route ---\n")
	fmt.Fprintf(&b, "Fastest route from %s to %s:\n", from, to)
	b.WriteString(strings.Join(ids, " -> "))
	b.WriteString("\n")
	for _, id := range res.Path {
		fmt.Fprintf(&b, "%s (%s)\n", id, displayName(names, id))
	}
	fmt.Fprintf(&b, "Total travel time: %d seconds\n", res.Cost)

	_, err := io.WriteString(w, b.String())
	return err
}
