package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
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

	// Shared secret guarding the user-provisioning webhook; empty
	// disables the check
	webhookSecret string

	// Services
	authService     driving.AuthService
	userService     driving.UserService
	projectService  driving.ProjectService
	documentService driving.DocumentService
	chatService     driving.ChatService
	askService      driving.AskService
	settingsService driving.SettingsService

	// Infrastructure
	taskQueue driven.TaskQueue
	db        Pinger // PostgreSQL health check
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	WebhookSecret  string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	projectService driving.ProjectService,
	documentService driving.DocumentService,
	chatService driving.ChatService,
	askService driving.AskService,
	settingsService driving.SettingsService,
	taskQueue driven.TaskQueue,
	db Pinger,
) *Server {
	s := &Server{
		router:          http.NewServeMux(),
		version:         cfg.Version,
		webhookSecret:   cfg.WebhookSecret,
		authService:     authService,
		userService:     userService,
		projectService:  projectService,
		documentService: documentService,
		chatService:     chatService,
		askService:      askService,
		settingsService: settingsService,
		taskQueue:       taskQueue,
		db:              db,
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.httpServer = &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: Chain(s.router,
			Recovery(slog.Default()),
			RequestLogging(slog.Default()),
			CORS(origins),
		),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls are slow
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

	// Setup endpoint (public, one-time use)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Identity-provider webhook (guarded by shared secret, not sessions)
	s.router.HandleFunc("POST /api/v1/webhooks/users", s.handleProvisionUser)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))
	s.router.Handle("POST /api/v1/auth/password",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleChangePassword)))

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

	// Project endpoints (authenticated)
	s.router.Handle("GET /api/v1/projects",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListProjects)))
	s.router.Handle("POST /api/v1/projects",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateProject)))
	s.router.Handle("GET /api/v1/projects/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetProject)))
	s.router.Handle("DELETE /api/v1/projects/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteProject)))

	// Retrieval settings endpoints (authenticated)
	s.router.Handle("GET /api/v1/projects/{id}/settings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSettings)))
	s.router.Handle("PUT /api/v1/projects/{id}/settings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateSettings)))

	// File endpoints (authenticated)
	s.router.Handle("GET /api/v1/projects/{id}/files",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListDocuments)))
	s.router.Handle("POST /api/v1/projects/{id}/files/upload-url",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateUploadURL)))
	s.router.Handle("POST /api/v1/projects/{id}/files/confirm",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleConfirmUpload)))
	s.router.Handle("POST /api/v1/projects/{id}/files/url",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAddURL)))
	s.router.Handle("DELETE /api/v1/projects/{id}/files/{docID}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteDocument)))

	// Chat endpoints (authenticated)
	s.router.Handle("POST /api/v1/chats",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateChat)))
	s.router.Handle("GET /api/v1/chats/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetChat)))
	s.router.Handle("GET /api/v1/chats/{id}/messages",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListChatMessages)))
	s.router.Handle("DELETE /api/v1/chats/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteChat)))

	// Ask endpoint (authenticated)
	s.router.Handle("POST /api/v1/ask",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAsk)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		slog.Info("starting http server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-stop
	slog.Info("shutting down http server")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("http server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
