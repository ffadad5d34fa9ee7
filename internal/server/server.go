// Package server provides the HTTP API for Youyaku.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/youyaku/internal/config"
	"github.com/hyperjump/youyaku/internal/frequency"
	"github.com/hyperjump/youyaku/internal/summarizer"
)

// Server is the HTTP server for the Youyaku API.
type Server struct {
	summarizer *summarizer.Summarizer
	fallback   *frequency.Summarizer
	config     *config.ServerConfig
	logger     *zap.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	sum *summarizer.Summarizer,
	fallback *frequency.Summarizer,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		summarizer: sum,
		fallback:   fallback,
		config:     cfg,
		logger:     logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Router builds the chi router. Exposed separately so tests can drive
// handlers without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/summaries", s.handleSummarize)
	r.Post("/api/v1/summaries/embeddings", s.handleEmbeddings)
	r.Post("/api/v1/summaries/frequency", s.handleFrequency)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
