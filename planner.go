package subwaymapper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"time"

	"github.com/radiation/subway-mapper/cache"
	"github.com/radiation/subway-mapper/config"
	"github.com/radiation/subway-mapper/formatter"
	"github.com/radiation/subway-mapper/graph"
	"github.com/radiation/subway-mapper/gtfs"
	"github.com/radiation/subway-mapper/gtfsrt"
	"github.com/radiation/subway-mapper/metrics"
	"github.com/radiation/subway-mapper/pathfind"
)

// Fetcher returns raw GTFS-Realtime bytes for a URL or path.
// *gtfsrt.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, urlOrPath string) ([]byte, error)
}

// Planner answers route queries against one built graph.
// It is immutable after construction and safe for concurrent use.
type Planner struct {
	graph      *graph.Graph
	static     *gtfs.StaticIndex
	stopRoutes map[graph.StopID][]string // sorted route ids seen at each stop
	feedTime   time.Time
	fromCache  bool
	metrics    *metrics.Collector
}

// Option configures a Planner before its graph is built
type Option func(*Planner)

// WithMetrics records build and query metrics on c
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Planner) { p.metrics = c }
}

// WithFeedTimestamp sets the feed header time reported by health checks
func WithFeedTimestamp(t time.Time) Option {
	return func(p *Planner) { p.feedTime = t }
}

// NewPlanner builds the stop graph from trips plus the static transfers, if any.
func NewPlanner(trips []graph.TripRecord, static *gtfs.StaticIndex, opts ...Option) *Planner {
	p := newPlanner(static, opts)
	p.build(trips)
	return p
}

func newPlanner(static *gtfs.StaticIndex, opts []Option) *Planner {
	p := &Planner{static: static}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) build(trips []graph.TripRecord) {
	start := time.Now()
	p.graph = graph.Build(trips, p.static.Transfers())
	elapsed := time.Since(start)

	st := p.graph.Stats()
	log.Printf("graph built in %s: %d stops, %d edges (%d segments, %d discarded, %d collapsed, %d transfers, %d transfers dropped)",
		elapsed, p.graph.Len(), p.graph.EdgeCount(),
		st.Segments, st.DiscardedSegments, st.CollapsedSegments, st.Transfers, st.DroppedTransfers)
	p.metrics.ObserveBuild(p.graph.Len(), p.graph.EdgeCount(), elapsed)
	p.stopRoutes = routesByStop(trips)
}

func routesByStop(trips []graph.TripRecord) map[graph.StopID][]string {
	seen := map[graph.StopID]map[string]struct{}{}
	for _, trip := range trips {
		if trip.RouteID == "" {
			continue
		}
		for _, v := range trip.Visits {
			if seen[v.StopID] == nil {
				seen[v.StopID] = map[string]struct{}{}
			}
			seen[v.StopID][trip.RouteID] = struct{}{}
		}
	}
	out := make(map[graph.StopID][]string, len(seen))
	for stop, set := range seen {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[stop] = ids
	}
	return out
}

// Route returns the fastest path from -> to
func (p *Planner) Route(from, to graph.StopID) pathfind.Result {
	start := time.Now()
	res := pathfind.FindPath(p.graph, from, to)
	p.metrics.ObserveQuery(res.Found(), time.Since(start))
	return res
}

// Graph returns the built stop graph
func (p *Planner) Graph() *graph.Graph { return p.graph }

// Static returns the static GTFS index, nil when none was loaded
func (p *Planner) Static() *gtfs.StaticIndex { return p.static }

// FeedTimestamp is the realtime header time, zero when unknown
func (p *Planner) FeedTimestamp() time.Time { return p.feedTime }

// FromCache reports whether the trips came from the cache instead of the live feed
func (p *Planner) FromCache() bool { return p.fromCache }

// Names resolves stop ids through the static index
func (p *Planner) Names() func(graph.StopID) string { return p.static.Names() }

// StopRoutes lists the routes whose trips visit id, with names and colors from routes.txt
func (p *Planner) StopRoutes(id graph.StopID) []formatter.RouteBadge {
	ids := p.stopRoutes[id]
	if len(ids) == 0 {
		return nil
	}
	out := make([]formatter.RouteBadge, len(ids))
	for i, r := range ids {
		out[i] = formatter.RouteBadge{
			RouteID:   r,
			ShortName: p.static.RouteShortName(r),
			LongName:  p.static.RouteLongName(r),
			Color:     p.static.RouteColor(r),
		}
	}
	return out
}

// StopCoord returns the stops.txt position of id
func (p *Planner) StopCoord(id graph.StopID) (lat, lon float64, ok bool) {
	c, ok := p.static.StopCoord(string(id))
	return c[1], c[0], ok
}

// Load fetches the configured realtime feed and builds a Planner.
//
// A successful fetch refreshes the trip cache. When the fetch or decode fails
// the cached trips are used instead; with no cache the error is returned.
// A missing static GTFS path only disables stop names and transfers.
func Load(ctx context.Context, cfg config.AppConfig, f Fetcher, opts ...Option) (*Planner, error) {
	static, err := loadStatic(ctx, cfg.GTFS.StaticPath)
	if err != nil {
		return nil, err
	}

	src := cfg.GTFSRT.FeedURL
	if src == "" {
		src, err = gtfsrt.FeedURLForLine(cfg.GTFSRT.Line)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("fetching GTFS data for line %s", cfg.GTFSRT.Line)
	feed, fetchErr := fetchFeed(ctx, f, src)
	if fetchErr == nil {
		if cfg.Cache.Path != "" {
			if err := cache.SaveToFile(feed.Trips, cfg.Cache.Path); err != nil {
				log.Printf("cache write failed: %v", err)
			} else {
				log.Printf("data cached in %s", cfg.Cache.Path)
			}
		}
		p := newPlanner(static, append(opts, WithFeedTimestamp(feed.Timestamp)))
		p.build(feed.Trips)
		return p, nil
	}

	p := newPlanner(static, opts)
	p.metrics.FetchFailed()
	log.Printf("fetching failed: %v; attempting to load from cache", fetchErr)
	if cfg.Cache.Path == "" {
		return nil, fetchErr
	}
	trips, err := cache.LoadFromFile(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", err, fetchErr)
	}
	log.Printf("loaded %d cached trips from %s", len(trips), cfg.Cache.Path)
	p.metrics.CacheFallback()
	p.fromCache = true
	p.build(trips)
	return p, nil
}

func fetchFeed(ctx context.Context, f Fetcher, src string) (*gtfsrt.Feed, error) {
	data, err := f.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty feed from %s", src)
	}
	return gtfsrt.ParseFeed(data)
}

func loadStatic(ctx context.Context, path string) (*gtfs.StaticIndex, error) {
	if path == "" {
		return nil, nil
	}
	static, err := gtfs.LoadStaticFromPath(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("static GTFS not found at %s; stop names and transfers disabled", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	log.Printf("static GTFS loaded from %s: %d stops, %d routes, %d transfers",
		path, len(static.AllStops()), len(static.AllRoutes()), len(static.Transfers()))
	return static, nil
}
