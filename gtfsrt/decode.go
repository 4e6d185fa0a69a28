package gtfsrt

import (
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/radiation/subway-mapper/graph"
)

// Feed is the decoded content of one FeedMessage
type Feed struct {
	Timestamp time.Time // header timestamp, zero if absent
	Trips     []graph.TripRecord
}

// ParseFeed decodes GTFS-RT protobuf bytes into trip records.
//
// Each TripUpdate entity yields one record. A visit's time is the stop's arrival time,
// falling back to its departure time (origin stops usually carry only a departure).
// Stop time updates with no stop id or no time at all are skipped.
func ParseFeed(data []byte) (*Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode feed message: %w", err)
	}

	feed := &Feed{Trips: []graph.TripRecord{}}
	if ts := fm.GetHeader().GetTimestamp(); ts > 0 {
		feed.Timestamp = time.Unix(int64(ts), 0)
	}

	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		rec := graph.TripRecord{
			TripID:  tu.GetTrip().GetTripId(),
			RouteID: tu.GetTrip().GetRouteId(),
			Visits:  make([]graph.StopVisit, 0, len(tu.GetStopTimeUpdate())),
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			sid := stu.GetStopId()
			if sid == "" {
				continue
			}
			sec := stu.GetArrival().GetTime()
			if sec == 0 {
				sec = stu.GetDeparture().GetTime()
			}
			if sec == 0 {
				continue
			}
			rec.Visits = append(rec.Visits, graph.StopVisit{
				StopID:  graph.StopID(sid),
				Arrival: time.Unix(sec, 0),
			})
		}
		feed.Trips = append(feed.Trips, rec)
	}
	return feed, nil
}

// ParseTrips is ParseFeed without the header
func ParseTrips(data []byte) ([]graph.TripRecord, error) {
	f, err := ParseFeed(data)
	if err != nil {
		return nil, err
	}
	return f.Trips, nil
}
