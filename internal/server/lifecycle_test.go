package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/home"
	"github.com/jackzampolin/formfill/internal/testutil"
)

func TestServer_FullLifecycle(t *testing.T) {
	cfg := testutil.NewServerConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dir, err := home.New(cfg.HomeDir)
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	registry, _ := testutil.MockRegistry(`{"name":"Sam"}`)

	srv, err := New(Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Registry: registry,
		Home:     dir,
		Logger:   cfg.Logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Start server in background
	serverErr := make(chan error, 1)
	serverCtx, serverCancel := context.WithCancel(ctx)

	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	// Wait for server to be ready
	if err := testutil.WaitForServer(ctx, cfg.URL(), 10*time.Second); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	t.Run("ready_endpoint", func(t *testing.T) {
		resp, err := http.Get(cfg.URL() + "/ready")
		if err != nil {
			t.Fatalf("ready check failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("ready status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("status_endpoint", func(t *testing.T) {
		status, err := testutil.GetStatus(cfg.URL())
		if err != nil {
			t.Fatalf("GetStatus() error = %v", err)
		}
		if status.Server != "running" {
			t.Errorf("status.Server = %q, want %q", status.Server, "running")
		}
		if len(status.Providers.LLM) != 1 || status.Providers.LLM[0] != "mock" {
			t.Errorf("status.Providers.LLM = %v, want [mock]", status.Providers.LLM)
		}
		if len(status.Forms) != 4 {
			t.Errorf("status.Forms = %v, want 4 forms", status.Forms)
		}
	})

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})

	t.Run("second_start_refused", func(t *testing.T) {
		if err := srv.Start(ctx); err == nil {
			t.Error("Start() on a running server should fail")
		}
	})

	// Shutdown server
	serverCancel()
	if err := testutil.WaitForShutdown(serverErr, 30*time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	t.Run("not_running_after_shutdown", func(t *testing.T) {
		if srv.IsRunning() {
			t.Error("IsRunning() = true after shutdown, want false")
		}
	})
}

func TestServer_ConfigReload(t *testing.T) {
	cfg := testutil.NewServerConfig(t)
	if err := config.WriteDefault(cfg.ConfigFile); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	mgr, err := config.NewManager(cfg.ConfigFile)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	srv, err := New(Config{ConfigManager: mgr, Logger: cfg.Logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := srv.Registry().ListLLM(); len(got) != 0 {
		t.Fatalf("providers without keys = %v, want none", got)
	}

	// Manual entry works without any provider.
	hts := httptest.NewServer(srv.Handler())
	defer hts.Close()
	ts := hts.URL
	var s sessionBody
	if code := doJSON(t, "POST", ts+"/api/sessions", map[string]string{"form": "customer_info"}, &s); code != http.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	var body sessionBody
	doJSON(t, "POST", ts+"/api/sessions/"+s.Session.ID+"/extract", map[string]string{"text": "Sam from Canada"}, &body)
	if body.Notice == "" {
		t.Error("expected missing credential notice")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	if err := mgr.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := srv.Registry().ListLLM(); len(got) != 1 || got[0] != "openai" {
		t.Errorf("providers after reload = %v, want [openai]", got)
	}
}
