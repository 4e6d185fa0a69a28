// Package graph builds the weighted stop graph used for route search.
//
// The input is a batch of trip records (ordered stop visits with arrival times) and
// transfer records. The output is an immutable adjacency structure where each edge weight
// is the fastest observed travel time in seconds between two consecutive stops.
//
// A built Graph is safe for concurrent read access.
package graph
