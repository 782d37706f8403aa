// Package ops exposes the operational HTTP surface: liveness, readiness
// and Prometheus metrics, served next to the bot webhook.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bagrikeng/tanlovbot/core/buildinfo"
	"github.com/bagrikeng/tanlovbot/core/logger"
)

// Readiness flips to ready once the bot is connected and storage is
// reachable. /readyz reports 503 until then.
type Readiness struct {
	ready atomic.Bool
}

func (r *Readiness) MarkReady()  { r.ready.Store(true) }
func (r *Readiness) MarkDown()   { r.ready.Store(false) }
func (r *Readiness) Ready() bool { return r.ready.Load() }

type Server struct {
	addr      string
	readiness *Readiness
	registry  *prometheus.Registry
	started   time.Time
}

func NewServer(addr string, readiness *Readiness, registry *prometheus.Registry) *Server {
	return &Server{
		addr:      addr,
		readiness: readiness,
		registry:  registry,
		started:   time.Now(),
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleStatus)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"service": "tanlovbot",
		"version": buildinfo.Version,
		"ready":   s.readiness.Ready(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.readiness.Ready() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Run serves until ctx is cancelled, then shuts down with a short grace
// period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "ops", "server.listen", slog.String("addr", s.addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
