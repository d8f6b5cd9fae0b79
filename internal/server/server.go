// Package server exposes AI help and the todo store over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/config"
	"github.com/sant0-9/todoai/internal/logger"
	"github.com/sant0-9/todoai/internal/todo"
)

// Planner produces a normalized step plan for a task.
type Planner interface {
	Plan(ctx context.Context, task string) (*assist.Plan, error)
}

type Server struct {
	cfg     *config.Config
	planner Planner
	store   *todo.Store
	log     logger.Logger
	metrics *metrics
	router  *gin.Engine
}

func New(cfg *config.Config, planner Planner, store *todo.Store, log logger.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		planner: planner,
		store:   store,
		log:     log,
		metrics: newMetrics(),
	}
	s.buildRouter()
	return s
}

func (s *Server) buildRouter() {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(s.log))
	router.Use(CORSMiddleware())
	RegisterRoutes(router, s)
	s.router = router
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Address()
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.cfg.RequestTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("Starting HTTP server", "address", fmt.Sprintf("http://%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Debug("Received shutdown signal, initiating graceful shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.log.Info("Server shutdown completed")
		return nil
	})
	return g.Wait()
}
