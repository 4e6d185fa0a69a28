// Package gtfsrt fetches and decodes GTFS-Realtime protobuf feeds.
//
// Only TripUpdate entities are used: every trip update becomes a graph.TripRecord whose
// visits are the stop time updates in feed order. Vehicle positions and alerts are ignored.
//
// The main entry points are Client.Fetch (raw bytes over HTTP) and ParseFeed.
package gtfsrt
