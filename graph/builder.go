package graph

import "time"

type pair struct {
	from, to StopID
}

// Build turns trips and transfers into a Graph.
//
// Each consecutive pair of visits in a trip yields a candidate edge weighted by the
// arrival difference in whole seconds; non-positive differences are discarded. Candidates
// sharing an (origin, destination) pair keep only the minimum weight. Transfers are then
// appended, without collapsing, to origins that already have a trip edge; the rest are
// dropped. Output order follows first observation so the result is deterministic.
func Build(trips []TripRecord, transfers []TransferRecord) *Graph {
	g := &Graph{adj: map[StopID][]Edge{}}

	best := map[pair]int64{}
	order := []pair{}
	for _, trip := range trips {
		for i := 0; i+1 < len(trip.Visits); i++ {
			cur, next := trip.Visits[i], trip.Visits[i+1]
			g.stats.Segments++
			secs := int64(next.Arrival.Sub(cur.Arrival) / time.Second)
			if secs <= 0 {
				g.stats.DiscardedSegments++
				continue
			}
			p := pair{from: cur.StopID, to: next.StopID}
			prev, seen := best[p]
			if !seen {
				best[p] = secs
				order = append(order, p)
				continue
			}
			g.stats.CollapsedSegments++
			if secs < prev {
				best[p] = secs
			}
		}
	}

	for _, p := range order {
		g.adj[p.from] = append(g.adj[p.from], Edge{To: p.to, Seconds: best[p]})
	}
	g.edges = len(order)

	for _, tr := range transfers {
		if _, ok := g.adj[tr.From]; !ok {
			g.stats.DroppedTransfers++
			continue
		}
		secs := tr.MinSeconds
		if secs < 0 {
			secs = 0
		}
		g.adj[tr.From] = append(g.adj[tr.From], Edge{To: tr.To, Seconds: secs})
		g.stats.Transfers++
		g.edges++
	}
	return g
}
