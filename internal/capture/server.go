package capture

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/config"
	"github.com/probelab/hdrprobe/internal/observability"
)

// Server represents the capture HTTP server.
type Server struct {
	config      config.CaptureConfig
	handler     *Handler
	middlewares Middleware
	srv         *http.Server
}

// NewServer creates a new capture server (DI constructor).
func NewServer(
	cfg *config.CaptureConfig,
	corsCfg *config.CORSConfig,
	handler *Handler,
) *Server {
	return &Server{
		config:      *cfg,
		handler:     handler,
		middlewares: BuildMiddlewareChain(corsCfg),
		srv:         nil,
	}
}

// Start starts the capture server. It blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Every path is captured so clients with unusual URL layouts still land here.
	mux.HandleFunc("/", s.handler.HandleCapture)
	mux.HandleFunc("/health", s.handler.HandleHealth)

	handlerWithMiddleware := s.middlewares(mux)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handlerWithMiddleware,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting capture server",
		zap.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("capture server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the capture server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down capture server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown capture server: %w", err)
	}

	return nil
}
