package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/baikal-tours/signup-bot/internal/logger"
	"github.com/baikal-tours/signup-bot/internal/metrics"
)

const aliveBody = "Bot is alive"

// Options configures the liveness listener.
type Options struct {
	Port int
	// MetricsHandler is optional; nil disables the /metrics route.
	MetricsHandler http.Handler
}

// Server answers hosting-platform liveness probes and exposes metrics.
type Server struct {
	srv *http.Server
}

// NewRouter builds the HTTP routes. Split out for tests.
func NewRouter(metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	alive := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(aliveBody))
	}
	r.Get("/", alive)
	r.Get("/health", alive)

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}

// New builds the server on the configured port.
func New(opts Options) *Server {
	mh := opts.MetricsHandler
	if mh == nil {
		mh = metrics.Handler()
	}
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(mh),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	logger.Info(ctx, "http", "listen", slog.String("listen", s.srv.Addr))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health server shutdown: %w", err)
	}
	logger.Info(logger.Background(), "http", "stopped")
	return nil
}
