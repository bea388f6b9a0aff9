// Package health serves the operational HTTP endpoints: liveness and a
// status snapshot of the poll loop with recent notification history.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/YanaYugai/homework-bot/internal/poller"
	"github.com/YanaYugai/homework-bot/internal/storage"
	"github.com/YanaYugai/homework-bot/pkg/logx"
)

// DefaultAddr binds to localhost; the endpoints expose notification text.
const DefaultAddr = "127.0.0.1:8090"

type Config struct {
	Addr string
}

// HistorySource yields recent notification deliveries (internal/notify).
type HistorySource interface {
	History() []storage.NotificationEntry
}

type Server struct {
	addr string
	log  logx.Logger

	snapshot func() poller.Snapshot
	history  HistorySource
}

func New(cfg Config, snapshot func() poller.Snapshot, history HistorySource, log logx.Logger) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Server{addr: addr, log: log, snapshot: snapshot, history: history}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		resp := statusResponse{Poller: s.snapshot()}
		if s.history != nil {
			resp.Notifications = s.history.History()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

type statusResponse struct {
	Poller        poller.Snapshot             `json:"poller"`
	Notifications []storage.NotificationEntry `json:"notifications,omitempty"`
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("status server listening", logx.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
