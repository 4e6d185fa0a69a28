package gtfsrt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownLine is returned for a line group with no known feed
var ErrUnknownLine = errors.New("unknown line")

const feedBase = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2F"

// FeedURLs maps NYC subway line groups to their GTFS-RT endpoints
var FeedURLs = map[string]string{
	"ACE":    feedBase + "gtfs-ace",
	"BDFM":   feedBase + "gtfs-bdfm",
	"G":      feedBase + "gtfs-g",
	"JZ":     feedBase + "gtfs-jz",
	"NQRW":   feedBase + "gtfs-nqrw",
	"L":      feedBase + "gtfs-l",
	"123456": feedBase + "gtfs",
	"SIR":    feedBase + "gtfs-si",
}

// FeedURLForLine returns the endpoint for a line group (case-insensitive)
func FeedURLForLine(line string) (string, error) {
	u, ok := FeedURLs[strings.ToUpper(strings.TrimSpace(line))]
	if !ok {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownLine, line, strings.Join(Lines(), ", "))
	}
	return u, nil
}

// Lines returns the known line groups, sorted
func Lines() []string {
	out := make([]string, 0, len(FeedURLs))
	for l := range FeedURLs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
