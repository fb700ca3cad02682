package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qinary/brandboard/internal/cache"
	"github.com/qinary/brandboard/internal/config"
	"github.com/qinary/brandboard/internal/content"
	"github.com/qinary/brandboard/internal/display"
	"github.com/qinary/brandboard/internal/metricool"
	"github.com/sirupsen/logrus"
)

// Server is the HTTP surface consumed by the TV presentation layer.
type Server struct {
	cfg        *config.Config
	provider   metricool.Client
	aggregator *content.Aggregator
	cache      *cache.Service
	controller *display.Controller
	sessions   *sessionStore
	registry   *prometheus.Registry
	metrics    *promMetrics
}

// New wires the HTTP surface over the pipeline services.
func New(cfg *config.Config, provider metricool.Client, aggregator *content.Aggregator, cacheService *cache.Service, controller *display.Controller) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		cfg:        cfg,
		provider:   provider,
		aggregator: aggregator,
		cache:      cacheService,
		controller: controller,
		sessions:   newSessionStore(cfg.SessionMaxAge),
		registry:   registry,
		metrics:    newPromMetrics(registry),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.instrument("health", s.handleHealth)).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	router.HandleFunc("/trigger", s.instrument("trigger", s.handleTrigger)).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.instrument("status", s.handleStatus)).Methods("GET")
	api.HandleFunc("/auth", s.instrument("auth", s.handleLogin)).Methods("POST")
	api.HandleFunc("/auth", s.instrument("auth", s.handleLogout)).Methods("DELETE")
	api.HandleFunc("/brands", s.instrument("brands", s.handleBrands)).Methods("GET")
	api.HandleFunc("/brands/{id}/stats", s.instrument("brand_stats", s.handleBrandStats)).Methods("GET")
	api.HandleFunc("/content/performance", s.instrument("performance", s.handlePerformance)).Methods("GET")

	displayAPI := api.PathPrefix("/display").Subrouter()
	displayAPI.HandleFunc("/state", s.instrument("display_state", s.handleDisplayState)).Methods("GET")
	displayAPI.HandleFunc("/advance", s.instrument("display_advance", s.requireSession(s.handleDisplayAdvance))).Methods("POST")
	displayAPI.HandleFunc("/back", s.instrument("display_back", s.requireSession(s.handleDisplayBack))).Methods("POST")
	displayAPI.HandleFunc("/select", s.instrument("display_select", s.requireSession(s.handleDisplaySelect))).Methods("POST")
	displayAPI.HandleFunc("/hold", s.instrument("display_hold", s.requireSession(s.handleDisplayHold))).Methods("POST")

	return router
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleStatus exposes the last aggregation run's snapshot as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.aggregator.GetMetrics()))
}

// handleTrigger kicks off a refresh in the background (for testing and
// manual recovery).
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	go func() {
		perf, err := s.aggregate(s.cfg.DisplayLimit)
		if err != nil {
			logrus.Errorf("Manual aggregation trigger failed: %v", err)
			return
		}
		s.cache.SetPerformance(perf)
	}()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Aggregation triggered successfully",
	})
}
