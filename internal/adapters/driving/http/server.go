package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService     driving.AuthService
	contentService  driving.ContentService
	registryService driving.RegistryService

	// Infrastructure
	db          Pinger // PostgreSQL health check (optional)
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	contentService driving.ContentService,
	registryService driving.RegistryService,
	db Pinger, // can be nil
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		authService:     authService,
		contentService:  contentService,
		registryService: registryService,
		db:              db,
		redisClient:     redisClient,
	}

	s.setupRoutes()

	// Recovery outermost so a panic anywhere below still becomes a 500.
	handler := NewRecoveryMiddleware().Handler(
		NewLoggingMiddleware().Handler(
			NewCORSMiddleware([]string{"*"}).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Topic endpoints (public: this is the patient-facing read surface)
	s.router.HandleFunc("GET /api/v1/topics", s.handleListTopics)
	s.router.HandleFunc("GET /api/v1/topics/{id}", s.handleGetTopic)
	s.router.HandleFunc("GET /api/v1/topics/{id}/record", s.handleGetTopicRecord)

	// Maintainer endpoints (authenticated)
	s.router.Handle("GET /api/v1/report",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetReport)))
	s.router.Handle("GET /api/v1/report/latest",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetLatestReport)))
	s.router.Handle("POST /api/v1/admin/rebuild",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRebuild)))
	s.router.Handle("GET /api/v1/admin/stats",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetStats)))
	s.router.Handle("PUT /api/v1/admin/records",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleArchiveRecords)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
