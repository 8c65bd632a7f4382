// Package server exposes the seek planner over HTTP next to the read-only
// warehouse and order fixtures.
package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/seek-sim/sim"
	"github.com/inference-sim/seek-sim/sim/workload"
)

// Server is the seek-sim HTTP server. It holds an injected planner and
// fixture source; there is no package-level application state.
type Server struct {
	router    chi.Router
	planner   *sim.Planner
	fixtures  *Fixtures
	config    Config
	metrics   *Metrics
	startTime time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithSeed makes request generation reproducible.
func WithSeed(seed int64) Option {
	return func(s *Server) {
		s.rng = sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemRequests)
	}
}

// WithMetrics replaces the server's Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New validates cfg against the planner's registry and creates a Server with all routes registered.
func New(cfg Config, planner *sim.Planner, fixtures *Fixtures, opts ...Option) (*Server, error) {
	if planner == nil {
		return nil, errors.New("server requires a planner")
	}
	if fixtures == nil {
		return nil, errors.New("server requires fixtures")
	}
	if err := cfg.Validate(planner.Registry()); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	s := &Server{
		router:    chi.NewRouter(),
		planner:   planner,
		fixtures:  fixtures,
		config:    cfg,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.rng == nil {
		WithSeed(time.Now().UnixNano())(s)
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(s.metrics))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/warehouse/ingredients", s.handleIngredients)
		r.Get("/warehouse/random-requests", s.handleRandomRequests)
		r.Get("/schedule", s.handleSchedule)
		r.Post("/schedule", s.handleScheduleBody)
		r.Get("/warehouse", s.handleIngredients)
		r.Get("/requests/random", s.handleRandomRequests)
		r.Get("/order-scheduler/dish/{dishID}", s.handleDishSchedule)
		r.Get("/order-scheduler/{orderID}", s.handleOrderSchedule)
	})
	r.Get("/order/recent", s.handleRecentOrders)
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logrus.Infof("seek-sim listening on %s (compare policies %v, dish requests %s)",
		s.config.Addr, s.config.ComparePolicies, s.config.DishRequests)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// generate draws count uniform requests within the configured bounds.
func (s *Server) generate(count int) ([]int, error) {
	spec := s.config.Requests
	spec.Count = count
	s.mu.Lock()
	defer s.mu.Unlock()
	return workload.GenerateRequests(s.rng, spec)
}

// plan runs one policy and records the outcome.
func (s *Server) plan(policy string, initial int, requests []int) (*sim.ScheduleResult, error) {
	res, err := s.planner.Plan(policy, initial, requests)
	if err != nil {
		s.metrics.ObservePlanError(policy, err)
		return nil, err
	}
	s.metrics.ObservePlan(res)
	return res, nil
}

// planCompare runs the configured comparison policy set over one request set.
func (s *Server) planCompare(initial int, requests []int) (map[string]*sim.ScheduleResult, error) {
	results, err := s.planner.PlanEach(s.config.ComparePolicies, initial, requests)
	if err != nil {
		s.metrics.ObservePlanError("compare", err)
		return nil, err
	}
	for _, res := range results {
		s.metrics.ObservePlan(res)
	}
	return results, nil
}
