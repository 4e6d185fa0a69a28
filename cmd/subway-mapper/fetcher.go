package main

import (
	"context"
	"os"
	"strings"

	"github.com/radiation/subway-mapper/gtfsrt"
)

// fetcher reads GTFS-RT data from URLs (through the feed client) or local files.
// This is CLI-specific logic and is not part of the core library.
type fetcher struct {
	client *gtfsrt.Client
}

func newFetcher(client *gtfsrt.Client) *fetcher {
	return &fetcher{client: client}
}

// Fetch returns raw protobuf bytes for urlOrPath.
// Returns nil if urlOrPath is empty.
func (f *fetcher) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}
	return f.client.Fetch(ctx, urlOrPath)
}
