package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"

	"geoping/internal/models"
)

// Server exposes the run history and on-demand analysis over HTTP
type Server struct {
	store    models.Database
	analyzer models.Analyzer
	targets  []models.Target
	port     int

	// busy is held while an analysis triggered over HTTP is running
	busy sync.Mutex
}

// New creates a new web server
func New(store models.Database, analyzer models.Analyzer, targets []models.Target, port int) *Server {
	return &Server{
		store:    store,
		analyzer: analyzer,
		targets:  targets,
		port:     port,
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/targets", s.handleTargets)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.handleRun)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)

	return mux
}

// Start serves the API until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("port", s.port).Info("web server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
