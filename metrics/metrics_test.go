package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.ObserveBuild(42, 97, 3*time.Millisecond)
	c.ObserveQuery(true, time.Millisecond)
	c.ObserveQuery(true, time.Millisecond)
	c.ObserveQuery(false, time.Millisecond)
	c.FetchFailed()
	c.CacheFallback()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"stops", testutil.ToFloat64(c.GraphStops), 42},
		{"edges", testutil.ToFloat64(c.GraphEdges), 97},
		{"found", testutil.ToFloat64(c.RouteQueries.WithLabelValues("found")), 2},
		{"unreachable", testutil.ToFloat64(c.RouteQueries.WithLabelValues("unreachable")), 1},
		{"fetch errors", testutil.ToFloat64(c.FeedFetchErrors), 1},
		{"cache fallbacks", testutil.ToFloat64(c.CacheFallbacks), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveBuild(3, 4, time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, name := range []string{
		"subway_mapper_graph_stops 3",
		"subway_mapper_graph_edges 4",
		"subway_mapper_graph_build_seconds_count 1",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	c.ObserveBuild(1, 1, time.Second)
	c.ObserveQuery(true, time.Second)
	c.FetchFailed()
	c.CacheFallback()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("nil collector handler status = %d", rec.Code)
	}
}
