package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assettco/energy"
	"assettco/ml"
	"assettco/monitoring"
	"assettco/wizard"
)

// Server is the API server.
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8080,
		Timeout:        30 * time.Second,
		MaxBodyBytes:   1 << 20,
		AllowedOrigins: []string{"*"},
	}
}

// Deps wires the domain services into the handlers.
type Deps struct {
	Logger    *zap.Logger
	Predictor *ml.Predictor
	Wizard    *wizard.Manager
	Energy    *energy.Agent
	Hub       *monitoring.Hub
	Metrics   *monitoring.Metrics
	Registry  *prometheus.Registry
}

// NewServer builds the mux, the middleware chain and the listener.
func NewServer(config ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	a := &api{Deps: deps}
	a.registerAssetHandlers(mux)
	a.registerPredictionHandlers(mux)
	a.registerTCOHandlers(mux)
	a.registerWizardHandlers(mux)
	a.registerEnergyHandlers(mux)
	a.registerDashboardHandlers(mux)
	a.registerTrainingHandlers(mux)

	if deps.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	middlewares := []Middleware{
		RecoveryMiddleware(deps.Logger),
		LoggerMiddleware(deps.Logger),
		SecurityHeadersMiddleware,
		CORSMiddleware(config.AllowedOrigins),
		TimeoutMiddleware(config.Timeout),
		RequestSizeMiddleware(config.MaxBodyBytes),
		GzipMiddleware,
	}
	if deps.Metrics != nil {
		middlewares = append(middlewares, MetricsMiddleware(deps.Metrics.HTTPRequests, deps.Metrics.HTTPLatency))
	}
	handler := Chain(middlewares...)(mux)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      handler,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: deps.Logger,
	}
}

// Start blocks until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		zap.String("addr", s.server.Addr),
		zap.String("websocket", "/api/ws/dashboard"))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop drains connections and shuts the listener down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
