// Package metrics exposes Prometheus metrics for graph builds, feed loads and
// route queries. All methods accept a nil *Collector and do nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry with the service's metrics
type Collector struct {
	reg *prometheus.Registry

	GraphStops prometheus.Gauge
	GraphEdges prometheus.Gauge

	BuildDuration prometheus.Histogram

	RouteQueries  *prometheus.CounterVec // result label: found|unreachable
	QueryDuration prometheus.Histogram

	FeedFetchErrors prometheus.Counter
	CacheFallbacks  prometheus.Counter
}

// NewCollector creates and registers all metrics
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		GraphStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "subway_mapper_graph_stops",
			Help: "Number of stops with outgoing edges in the current graph.",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "subway_mapper_graph_edges",
			Help: "Number of edges in the current graph.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "subway_mapper_graph_build_seconds",
			Help:    "Duration of graph construction.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		RouteQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subway_mapper_route_queries_total",
			Help: "Route queries by outcome.",
		}, []string{"result"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "subway_mapper_route_query_seconds",
			Help:    "Duration of shortest-path queries.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 15),
		}),
		FeedFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subway_mapper_feed_fetch_errors_total",
			Help: "Realtime feed fetch or decode failures.",
		}),
		CacheFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subway_mapper_cache_fallbacks_total",
			Help: "Loads served from the trip cache after a feed failure.",
		}),
	}

	reg.MustRegister(
		c.GraphStops, c.GraphEdges, c.BuildDuration,
		c.RouteQueries, c.QueryDuration,
		c.FeedFetchErrors, c.CacheFallbacks,
	)
	return c
}

// Handler serves the registry in Prometheus text format
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ObserveBuild records graph size and how long construction took
func (c *Collector) ObserveBuild(stops, edges int, d time.Duration) {
	if c == nil {
		return
	}
	c.GraphStops.Set(float64(stops))
	c.GraphEdges.Set(float64(edges))
	c.BuildDuration.Observe(d.Seconds())
}

// ObserveQuery counts a route query by outcome and records its duration
func (c *Collector) ObserveQuery(found bool, d time.Duration) {
	if c == nil {
		return
	}
	result := "unreachable"
	if found {
		result = "found"
	}
	c.RouteQueries.WithLabelValues(result).Inc()
	c.QueryDuration.Observe(d.Seconds())
}

// FetchFailed counts a realtime feed fetch or decode failure
func (c *Collector) FetchFailed() {
	if c == nil {
		return
	}
	c.FeedFetchErrors.Inc()
}

// CacheFallback counts a load served from the trip cache
func (c *Collector) CacheFallback() {
	if c == nil {
		return
	}
	c.CacheFallbacks.Inc()
}
