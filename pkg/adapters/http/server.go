package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/kefschema/internal/logging"
	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/observability"
	"github.com/aretw0/kefschema/pkg/openapi"
	"github.com/aretw0/kefschema/pkg/ports"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/aretw0/kefschema/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps call payloads; a service call carries a handful of scalars.
const maxBodyBytes = 64 << 10

// Server serves the registry to the platform's UI and dispatch layer.
type Server struct {
	Registry   *registry.Registry
	Dispatcher ports.Dispatcher
	Metrics    *observability.Metrics
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger
	Version    string
}

// Option configures the handler.
type Option func(*Server)

// WithDispatcher enables POST /services/{name}, forwarding valid calls.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(s *Server) { s.Dispatcher = d }
}

// WithMetrics counts requests into m and exposes g on /metrics.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithVersion sets the version reported by /health and the OpenAPI document.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// NewHandler creates the HTTP handler for reg.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	s := &Server{Registry: reg, Logger: logging.NewNop(), Version: "dev"}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/openapi.json", s.GetOpenAPI)
	r.Route("/services", func(r chi.Router) {
		r.Get("/", s.ListServices)
		r.Get("/{name}", s.GetService)
		r.Get("/{name}/schema", s.GetSchema)
		r.Post("/{name}/validate", s.ValidateCall)
		r.Post("/{name}", s.CallService)
	})

	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe records every request under its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.Metrics.ObserveRequest(route, status)
		s.Logger.Debug("request served",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.Version,
		"actions": s.Registry.Len(),
	})
}

// GetOpenAPI handles GET /openapi.json.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, openapi.Build(s.Registry, s.Version))
}

// ListServices handles GET /services.
func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.Actions())
}

// GetService handles GET /services/{name}.
func (s *Server) GetService(w http.ResponseWriter, r *http.Request) {
	def, ok := s.describe(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// GetSchema handles GET /services/{name}/schema.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	def, ok := s.describe(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, schema.ForAction(def))
}

// ValidateCall handles POST /services/{name}/validate.
func (s *Server) ValidateCall(w http.ResponseWriter, r *http.Request) {
	def, data, ok := s.decodeCall(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "action": def.Name, "data": data})
}

// CallService handles POST /services/{name}: the call is validated and then
// handed to the dispatcher.
func (s *Server) CallService(w http.ResponseWriter, r *http.Request) {
	if s.Dispatcher == nil {
		writeError(w, http.StatusNotImplemented, "no dispatcher configured")
		return
	}
	def, data, ok := s.decodeCall(w, r)
	if !ok {
		return
	}
	if err := s.Dispatcher.Dispatch(r.Context(), def.Name, data); err != nil {
		s.Logger.Error("dispatch failed", "action", def.Name, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "dispatched", "action": def.Name})
}

func (s *Server) describe(w http.ResponseWriter, r *http.Request) (domain.ActionDefinition, bool) {
	def, err := s.Registry.Describe(chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return def, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return def, false
	}
	return def, true
}

// decodeCall resolves the action, decodes the body and validates it.
// It writes the error response itself and reports false on failure.
func (s *Server) decodeCall(w http.ResponseWriter, r *http.Request) (domain.ActionDefinition, map[string]any, bool) {
	def, ok := s.describe(w, r)
	if !ok {
		return def, nil, false
	}

	var data map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		s.Logger.Warn("invalid request body", "action", def.Name, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return def, nil, false
	}

	err := schema.ValidateInvocation(def, data)
	s.Metrics.ObserveValidation(def.Name, err == nil)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"valid":  false,
			"action": def.Name,
			"errors": schema.FieldErrors(err),
		})
		return def, nil, false
	}
	return def, data, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
