// Package httpapi exposes the job board services as a JSON REST API built on
// gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address string
	cfg     *config.Config
	svc     *services.Services
	files   *storage.Files
	limiter Limiter
	logger  logging.Logger
}

// NewHTTPServer builds the server. A nil limiter falls back to an in-process
// one.
func NewHTTPServer(cfg *config.Config, l logging.Logger, svc *services.Services, files *storage.Files, limiter Limiter) *HTTPServer {
	if limiter == nil {
		limiter = NewMemoryLimiter()
	}
	return &HTTPServer{
		address: cfg.HTTPAddr,
		cfg:     cfg,
		svc:     svc,
		files:   files,
		limiter: limiter,
		logger:  l.With("module", "http_server"),
	}
}

// Handler returns the fully routed gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.router()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
