package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brk3/flexhabits/internal/config"
	"github.com/brk3/flexhabits/internal/logger"
	"github.com/brk3/flexhabits/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg   *config.Config
	store storage.Store
	now   func() time.Time
}

func New(cfg *config.Config, store storage.Store) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	s := &Server{cfg: cfg, store: store, now: time.Now}

	habits, err := store.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}
	updateHabitGauges(habits)
	return s, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.listHabits)
			r.Post("/", s.createHabit)
			r.Get("/{habit_id}", s.getHabit)
			r.Delete("/{habit_id}", s.deleteHabit)
			r.Post("/{habit_id}/completions", s.logCompletion)
			r.Post("/{habit_id}/pause", s.pauseHabit)
			r.Post("/{habit_id}/resume", s.resumeHabit)
			r.Get("/{habit_id}/summary", s.getHabitSummary)
		})
		r.Route("/moods", func(r chi.Router) {
			r.Get("/", s.listMoods)
			r.Post("/", s.logMood)
		})
		r.Get("/insights/weekly", s.getWeeklyInsight)
		r.Get("/insights/mood", s.getMoodInsight)
		r.Get("/coaching", s.getCoaching)
	})
	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", s.cfg.ListenAddr, "db_driver", s.cfg.DBDriver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
