// Package formatter renders route search results.
//
// This package is organized into:
// - text.go: the console report printed by the CLI
// - json.go: the RouteResponse document served by the HTTP API
//
// Both take a name lookup so callers decide where stop names come from;
// a nil lookup or an empty name renders as "Unknown Stop".
package formatter
