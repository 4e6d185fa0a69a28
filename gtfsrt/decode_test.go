package gtfsrt

import (
	"testing"
	"time"

	p "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/radiation/subway-mapper/graph"
)

// Helpers for building gtfs-realtime feeds
type stopUpdate struct {
	StopID    string
	Arrival   int64
	Departure int64
}

type tripUpdate struct {
	TripID      string
	RouteID     string
	StopUpdates []stopUpdate
}

func buildFeed(t *testing.T, headerTS uint64, updates []tripUpdate) []byte {
	t.Helper()

	entity := make([]*p.FeedEntity, 0, len(updates)+1)
	for i, tu := range updates {
		stus := make([]*p.TripUpdate_StopTimeUpdate, 0, len(tu.StopUpdates))
		for _, su := range tu.StopUpdates {
			stu := &p.TripUpdate_StopTimeUpdate{}
			if su.StopID != "" {
				stu.StopId = proto.String(su.StopID)
			}
			if su.Arrival != 0 {
				stu.Arrival = &p.TripUpdate_StopTimeEvent{Time: proto.Int64(su.Arrival)}
			}
			if su.Departure != 0 {
				stu.Departure = &p.TripUpdate_StopTimeEvent{Time: proto.Int64(su.Departure)}
			}
			stus = append(stus, stu)
		}
		trip := &p.TripDescriptor{TripId: proto.String(tu.TripID)}
		if tu.RouteID != "" {
			trip.RouteId = proto.String(tu.RouteID)
		}
		entity = append(entity, &p.FeedEntity{
			Id: proto.String("tu-" + string(rune('a'+i))),
			TripUpdate: &p.TripUpdate{
				Trip:           trip,
				StopTimeUpdate: stus,
			},
		})
	}

	// a vehicle position entity that must be ignored
	entity = append(entity, &p.FeedEntity{
		Id: proto.String("vp"),
		Vehicle: &p.VehiclePosition{
			Trip: &p.TripDescriptor{TripId: proto.String("ignored")},
		},
	})

	header := &p.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")}
	if headerTS > 0 {
		header.Timestamp = proto.Uint64(headerTS)
	}
	data, err := proto.Marshal(&p.FeedMessage{Header: header, Entity: entity})
	require.NoError(t, err)
	return data
}

func TestParseFeed(t *testing.T) {
	data := buildFeed(t, 1730707200, []tripUpdate{
		{
			TripID:  "A20241104",
			RouteID: "A",
			StopUpdates: []stopUpdate{
				{StopID: "A02S", Departure: 1730707200},
				{StopID: "A03S", Arrival: 1730707290, Departure: 1730707300},
				{StopID: "", Arrival: 1730707350},
				{StopID: "A05S"},
				{StopID: "A06S", Arrival: 1730707420},
			},
		},
		{TripID: "C20241104"},
	})

	feed, err := ParseFeed(data)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1730707200, 0), feed.Timestamp)
	require.Len(t, feed.Trips, 2)

	assert.Equal(t, graph.TripRecord{
		TripID:  "A20241104",
		RouteID: "A",
		Visits: []graph.StopVisit{
			{StopID: "A02S", Arrival: time.Unix(1730707200, 0)},
			{StopID: "A03S", Arrival: time.Unix(1730707290, 0)},
			{StopID: "A06S", Arrival: time.Unix(1730707420, 0)},
		},
	}, feed.Trips[0])

	assert.Equal(t, "C20241104", feed.Trips[1].TripID)
	assert.Empty(t, feed.Trips[1].RouteID)
	assert.Empty(t, feed.Trips[1].Visits)
}

func TestParseFeed_NoHeaderTimestamp(t *testing.T) {
	feed, err := ParseFeed(buildFeed(t, 0, nil))
	require.NoError(t, err)

	assert.True(t, feed.Timestamp.IsZero())
	assert.Empty(t, feed.Trips)
}

func TestParseFeed_Garbage(t *testing.T) {
	_, err := ParseFeed([]byte("definitely not protobuf"))
	assert.Error(t, err)
}

func TestParseTrips_FeedsGraphBuilder(t *testing.T) {
	data := buildFeed(t, 0, []tripUpdate{
		{TripID: "1", StopUpdates: []stopUpdate{{StopID: "A", Arrival: 100}, {StopID: "B", Arrival: 220}}},
		{TripID: "2", StopUpdates: []stopUpdate{{StopID: "A", Arrival: 500}, {StopID: "B", Arrival: 590}}},
	})

	trips, err := ParseTrips(data)
	require.NoError(t, err)

	g := graph.Build(trips, nil)
	assert.Equal(t, []graph.Edge{{To: "B", Seconds: 90}}, g.Neighbors("A"))
}

func TestFeedURLForLine(t *testing.T) {
	u, err := FeedURLForLine(" ace ")
	require.NoError(t, err)
	assert.Equal(t, "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-ace", u)

	_, err = FeedURLForLine("Z")
	assert.ErrorIs(t, err, ErrUnknownLine)

	assert.Len(t, Lines(), 8)
}
