// Package server exposes route search over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/radiation/subway-mapper/config"
	"github.com/radiation/subway-mapper/formatter"
	"github.com/radiation/subway-mapper/graph"
	"github.com/radiation/subway-mapper/metrics"
	"github.com/radiation/subway-mapper/pathfind"
	"github.com/radiation/subway-mapper/utils"
)

// Planner is the query side of subwaymapper.Planner
type Planner interface {
	Route(from, to graph.StopID) pathfind.Result
	Names() func(graph.StopID) string
	StopRoutes(graph.StopID) []formatter.RouteBadge
	StopCoord(graph.StopID) (lat, lon float64, ok bool)
	Graph() *graph.Graph
	FeedTimestamp() time.Time
	FromCache() bool
}

// Server serves the route API for one Planner
type Server struct {
	planner Planner
	metrics *metrics.Collector
	cfg     config.ServerConfig
	router  *mux.Router
}

// New registers the API routes; /metrics is mounted only when c is non-nil
func New(p Planner, cfg config.ServerConfig, c *metrics.Collector) *Server {
	s := &Server{planner: p, metrics: c, cfg: cfg, router: mux.NewRouter()}
	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/route", s.handleRoute).Methods(http.MethodGet)
	if c != nil {
		s.router.Handle("/metrics", c.Handler()).Methods(http.MethodGet)
	}
	return s
}

// Handler returns the routed handler, bounded by the configured request timeout
func (s *Server) Handler() http.Handler {
	if s.cfg.RequestTimeoutMS <= 0 {
		return s.router
	}
	return http.TimeoutHandler(s.router, time.Duration(s.cfg.RequestTimeoutMS)*time.Millisecond, "request timed out")
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	log.Printf("server listening on %s", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Printf("server shut down successfully")
	return nil
}

type healthResponse struct {
	Status        string `json:"status"`
	FeedTimestamp string `json:"feedTimestamp,omitempty"`
	FromCache     bool   `json:"fromCache"`
	Stops         int    `json:"stops"`
	Edges         int    `json:"edges"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	g := s.planner.Graph()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		FeedTimestamp: utils.Iso8601FromTime(s.planner.FeedTimestamp()),
		FromCache:     s.planner.FromCache(),
		Stops:         g.Len(),
		Edges:         g.EdgeCount(),
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	q, err := parseRouteQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload(err.Error()))
		return
	}

	res := s.planner.Route(q.from, q.to)
	names := formatter.NameFunc(s.planner.Names())

	if q.format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := formatter.Text(w, q.from, q.to, res, names); err != nil {
			log.Printf("write route response: %v", err)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	resp := formatter.JSON(q.from, q.to, res, names,
		formatter.WithRoutes(s.planner.StopRoutes),
		formatter.WithCoords(s.planner.StopCoord))
	_, _ = w.Write(formatter.BuildJSON(resp))
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
}

func errorPayload(msg string) errorResponse {
	var e errorResponse
	e.Error.Description = msg
	return e
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
