// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/extract"
	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/home"
	"github.com/jackzampolin/formfill/internal/llmcall"
	"github.com/jackzampolin/formfill/internal/prompts"
	"github.com/jackzampolin/formfill/internal/providers"
	"github.com/jackzampolin/formfill/internal/render"
	"github.com/jackzampolin/formfill/internal/session"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Registry       *providers.Registry
	ConfigManager  *config.Manager
	Logger         *slog.Logger
	Home           *home.Dir
	Catalog        *forms.Catalog
	Sessions       session.Store
	Extractor      *extract.Client
	Renderer       *render.Renderer
	LLMCallStore   *llmcall.Store
	PromptResolver *prompts.Resolver
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// RegistryFrom extracts the provider registry from context.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}

// LoggerFrom extracts the logger from context.
// Falls back to slog.Default so callers can log unconditionally.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// CatalogFrom extracts the form catalog from context.
func CatalogFrom(ctx context.Context) *forms.Catalog {
	if s := ServicesFrom(ctx); s != nil {
		return s.Catalog
	}
	return nil
}

// SessionsFrom extracts the session store from context.
func SessionsFrom(ctx context.Context) session.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// ExtractorFrom extracts the extraction client from context.
func ExtractorFrom(ctx context.Context) *extract.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.Extractor
	}
	return nil
}

// RendererFrom extracts the field renderer from context.
func RendererFrom(ctx context.Context) *render.Renderer {
	if s := ServicesFrom(ctx); s != nil {
		return s.Renderer
	}
	return nil
}

// LLMCallStoreFrom extracts the LLM call store from context.
func LLMCallStoreFrom(ctx context.Context) *llmcall.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.LLMCallStore
	}
	return nil
}

// PromptResolverFrom extracts the prompt resolver from context.
func PromptResolverFrom(ctx context.Context) *prompts.Resolver {
	if s := ServicesFrom(ctx); s != nil {
		return s.PromptResolver
	}
	return nil
}
