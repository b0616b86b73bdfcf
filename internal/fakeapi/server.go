// Package fakeapi is an in-process Patronus control plane used by the SDK
// and CLI tests. It serves the real wire contract (bearer auth, resource
// envelopes, 201/204 codes, {"error": ...} failures) over in-memory state.
package fakeapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	patronus "github.com/patronus-sdwan/patronus-go"
)

type Server struct {
	router chi.Router
	logger zerolog.Logger
	apiKey string

	mu       sync.Mutex
	sites    map[string]patronus.Site
	tunnels  map[string]patronus.Tunnel
	policies map[string]patronus.Policy
	orgs     map[string]patronus.Organization
	models   map[string]patronus.MLModel
	series   map[string][]patronus.MetricData

	// injected points the next API request at a canned failure.
	injected *injectedError
}

type injectedError struct {
	status  int
	message string
}

func NewServer(apiKey string, logger zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		apiKey:   apiKey,
		sites:    map[string]patronus.Site{},
		tunnels:  map[string]patronus.Tunnel{},
		policies: map[string]patronus.Policy{},
		orgs:     map[string]patronus.Organization{},
		models:   map[string]patronus.MLModel{},
		series:   map[string][]patronus.MetricData{},
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(metricsMiddleware)

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.auth)
		r.Use(s.failureInjector)

		r.Get("/sites", s.listSites)
		r.Post("/sites", s.createSite)
		r.Get("/sites/{id}", s.getSite)
		r.Put("/sites/{id}", s.updateSite)
		r.Delete("/sites/{id}", s.deleteSite)

		r.Get("/tunnels", s.listTunnels)
		r.Post("/tunnels", s.createTunnel)
		r.Get("/tunnels/{id}", s.getTunnel)
		r.Put("/tunnels/{id}", s.updateTunnel)
		r.Get("/tunnels/{id}/status", s.getTunnelStatus)
		r.Delete("/tunnels/{id}", s.deleteTunnel)

		r.Get("/policies", s.listPolicies)
		r.Post("/policies", s.createPolicy)
		r.Get("/policies/{id}", s.getPolicy)
		r.Put("/policies/{id}", s.updatePolicy)
		r.Delete("/policies/{id}", s.deletePolicy)

		r.Get("/organizations", s.listOrganizations)
		r.Post("/organizations", s.createOrganization)
		r.Get("/organizations/{id}", s.getOrganization)
		r.Put("/organizations/{id}", s.updateOrganization)
		r.Delete("/organizations/{id}", s.deleteOrganization)

		r.Get("/metrics", s.queryMetrics)

		r.Get("/ml-models", s.listMLModels)
		r.Post("/ml-models", s.createMLModel)
		r.Get("/ml-models/{id}", s.getMLModel)
		r.Post("/ml-models/{id}/deploy", s.deployMLModel)
		r.Delete("/ml-models/{id}", s.deleteMLModel)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// InjectError makes the next authenticated API request fail with the given
// status and error message.
func (s *Server) InjectError(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injected = &injectedError{status: status, message: message}
}

// SeedMetrics stores a series for queryMetrics to return.
func (s *Server) SeedMetrics(name string, data []patronus.MetricData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[name] = data
}

// SiteCount reports how many sites the server holds.
func (s *Server) SiteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sites)
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.apiKey {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failureInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		inj := s.injected
		s.injected = nil
		s.mu.Unlock()

		if inj != nil {
			if inj.message == "" {
				writeJSON(w, inj.status, map[string]string{})
			} else {
				writeError(w, inj.status, inj.message)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newID() string {
	return uuid.New().String()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
