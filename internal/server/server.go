package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/extract"
	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/home"
	"github.com/jackzampolin/formfill/internal/llmcall"
	"github.com/jackzampolin/formfill/internal/prompts"
	"github.com/jackzampolin/formfill/internal/prompts/fill"
	"github.com/jackzampolin/formfill/internal/providers"
	"github.com/jackzampolin/formfill/internal/render"
	"github.com/jackzampolin/formfill/internal/server/endpoints"
	"github.com/jackzampolin/formfill/internal/session"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// Server is the formfill HTTP server. It owns the form sessions and the
// provider registry used for extraction.
type Server struct {
	httpServer *http.Server
	registry   *providers.Registry
	configMgr  *config.Manager
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Registry overrides the config-driven provider registry (tests)
	Registry *providers.Registry
	// Sessions overrides the in-memory session store
	Sessions session.Store
	// Home is the formfill home directory
	Home *home.Dir
	// LLMCallCapacity bounds the in-memory call log (default 500)
	LLMCallCapacity int
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}

	// Create provider registry
	registry := cfg.Registry
	if registry == nil {
		registry = providers.NewRegistry()
	}
	registry.SetLogger(cfg.Logger)

	extractOpts := extract.Options{Logger: cfg.Logger}

	// If config manager provided, set up providers and hot reload
	if cfg.ConfigManager != nil {
		c := cfg.ConfigManager.Get()
		registry.Reload(c.ToProviderRegistryConfig())
		extractOpts = ExtractOptions(c, cfg.Logger)
	}

	calls := llmcall.NewStore(cfg.LLMCallCapacity)
	extractOpts.Recorder = llmcall.NewRecorder(calls)
	extractor := extract.New(registry, extractOpts)

	if cfg.ConfigManager != nil {
		// Watch for config changes
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			registry.Reload(c.ToProviderRegistryConfig())
			extractor.SetDefaults(c.Defaults.LLMProvider, c.Defaults.Model)
			cfg.Logger.Info("provider registry reloaded from config", "default", c.Defaults.LLMProvider)
		})
	}

	resolver := prompts.NewResolver(cfg.Logger)
	fill.RegisterPrompts(resolver)

	s := &Server{
		registry:  registry,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}

	s.services = &svcctx.Services{
		Registry:       registry,
		ConfigManager:  cfg.ConfigManager,
		Logger:         cfg.Logger,
		Home:           cfg.Home,
		Catalog:        forms.Default(),
		Sessions:       cfg.Sessions,
		Extractor:      extractor,
		Renderer:       render.New(),
		LLMCallStore:   calls,
		PromptResolver: resolver,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second, // extraction waits on the completion service
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// ExtractOptions maps the config defaults onto extraction client options.
func ExtractOptions(c *config.Config, logger *slog.Logger) extract.Options {
	return extract.Options{
		Provider:        c.Defaults.LLMProvider,
		Model:           c.Defaults.Model,
		Temperature:     c.Defaults.Temperature,
		FormMaxTokens:   c.Defaults.FormMaxTokens,
		WizardMaxTokens: c.Defaults.WizardMaxTokens,
		Logger:          logger,
	}
}

// Start starts the server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("providers registered", "llm", s.registry.ListLLM())

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Registry returns the provider registry.
func (s *Server) Registry() *providers.Registry {
	return s.registry
}

// Services returns the services injected into every request.
func (s *Server) Services() *svcctx.Services {
	return s.services
}

// Handler returns the root handler, for serving without a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the services are wired.
// Returns 503 Service Unavailable otherwise.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.services == nil || s.services.Sessions == nil || s.services.Catalog == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
