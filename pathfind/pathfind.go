// Package pathfind finds minimum-time paths through a built stop graph.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/radiation/subway-mapper/graph"
)

// Unreachable is the cost reported when no path exists
const Unreachable int64 = math.MaxInt64

// Result is the outcome of a single query
type Result struct {
	Cost int64          // total seconds, Unreachable if no path
	Path []graph.StopID // source..target inclusive, nil if no path
}

// Found reports whether a path exists
func (r Result) Found() bool { return r.Cost != Unreachable && len(r.Path) > 0 }

// FindPath runs Dijkstra from source and stops as soon as target is finalized.
//
// Frontier entries are ordered by cost, then by node id, then by path compared element
// by element (a prefix sorts first). An absent source or target is not an error: the
// query returns an unreachable Result, except that source == target always yields
// cost 0 and path [source].
func FindPath(g *graph.Graph, source, target graph.StopID) Result {
	pq := &frontier{{cost: 0, node: source}}
	visited := map[graph.StopID]struct{}{}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(state)
		if _, done := visited[cur.node]; done {
			continue
		}
		visited[cur.node] = struct{}{}

		path := make([]graph.StopID, len(cur.path)+1)
		copy(path, cur.path)
		path[len(cur.path)] = cur.node

		if cur.node == target {
			return Result{Cost: cur.cost, Path: path}
		}

		for _, e := range g.Neighbors(cur.node) {
			if _, done := visited[e.To]; done {
				continue
			}
			// costs saturate below Unreachable; an edge that would reach it is unusable
			if e.Seconds >= Unreachable-cur.cost {
				continue
			}
			heap.Push(pq, state{cost: cur.cost + e.Seconds, node: e.To, path: path})
		}
	}
	return Result{Cost: Unreachable}
}

type state struct {
	cost int64
	node graph.StopID
	path []graph.StopID // shared between siblings, never mutated
}

func (a state) less(b state) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.node != b.node {
		return a.node < b.node
	}
	for i := 0; i < len(a.path) && i < len(b.path); i++ {
		if a.path[i] != b.path[i] {
			return a.path[i] < b.path[i]
		}
	}
	return len(a.path) < len(b.path)
}

type frontier []state

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].less(f[j]) }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(state)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = state{}
	*f = old[:n-1]
	return item
}
