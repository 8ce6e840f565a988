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

	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
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
	authService       driving.AuthService
	userService       driving.UserService
	ingestService     driving.IngestService
	documentService   driving.DocumentService
	pageService       driving.PageService
	annotationService driving.AnnotationService
	searchService     driving.SearchService
	chatService       driving.ChatService
	analyticsService  driving.AnalyticsService

	// Infrastructure
	db          Pinger // PostgreSQL health check
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
	userService driving.UserService,
	ingestService driving.IngestService,
	documentService driving.DocumentService,
	pageService driving.PageService,
	annotationService driving.AnnotationService,
	searchService driving.SearchService,
	chatService driving.ChatService,
	analyticsService driving.AnalyticsService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		authService:       authService,
		userService:       userService,
		ingestService:     ingestService,
		documentService:   documentService,
		pageService:       pageService,
		annotationService: annotationService,
		searchService:     searchService,
		chatService:       chatService,
		analyticsService:  analyticsService,
		db:                db,
		redisClient:       redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
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
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Setup endpoints (public, one-time use)
	s.router.HandleFunc("GET /api/v1/setup", s.handleSetupStatus)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("POST /api/v1/auth/logout-all",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogoutAll)))

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Admin-only user management
	s.router.Handle("GET /api/v1/users",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleListUsers))))
	s.router.Handle("POST /api/v1/users",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleCreateUser))))
	s.router.Handle("DELETE /api/v1/users/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleDeleteUser))))

	// File endpoints (upload and delete are admin-only)
	s.router.Handle("POST /api/v1/files",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleUpload))))
	s.router.Handle("GET /api/v1/files",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListFiles)))
	s.router.Handle("GET /api/v1/files/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetFile)))
	s.router.Handle("DELETE /api/v1/files/{id}",
		authMiddleware.Authenticate(
			authMiddleware.RequireAdmin(http.HandlerFunc(s.handleDeleteFile))))
	s.router.Handle("GET /api/v1/files/{id}/summary",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSummarize)))

	// Page endpoints
	s.router.Handle("GET /api/v1/files/{id}/pages",
		authMiddleware.Authenticate(http.HandlerFunc(s.handlePageInfo)))
	s.router.Handle("GET /api/v1/files/{id}/pages/{page}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetPage)))
	s.router.Handle("GET /api/v1/files/{id}/pages/{page}/render",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRenderPage)))
	s.router.Handle("POST /api/v1/files/{id}/pages/{page}/resolve",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleResolveSelection)))

	// Annotation endpoints
	s.router.Handle("POST /api/v1/files/{id}/annotations",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAddAnnotation)))
	s.router.Handle("GET /api/v1/files/{id}/annotations",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListAnnotations)))
	s.router.Handle("GET /api/v1/files/{id}/pages/{page}/annotations",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListPageAnnotations)))
	s.router.Handle("DELETE /api/v1/files/{id}/annotations/{annotationID}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteAnnotation)))

	// Search endpoints
	s.router.Handle("GET /api/v1/search",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSearch)))
	s.router.Handle("POST /api/v1/search/advanced",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAdvancedSearch)))

	// Chat endpoint
	s.router.Handle("POST /api/v1/chat",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleChat)))

	// Analytics endpoints
	s.router.Handle("GET /api/v1/analytics/trends",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleTrends)))
	s.router.Handle("GET /api/v1/analytics/timeline",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleTimeline)))
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
