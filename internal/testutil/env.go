// Package testutil holds helpers shared by server-level tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/providers"
)

// ServerConfig returns configuration values for creating a test server.
// This avoids importing the server package directly.
type ServerConfig struct {
	Host       string
	Port       string
	HomeDir    string
	ConfigFile string
	Logger     *slog.Logger
}

// NewServerConfig creates configuration for a test server on a free port
// with its own home directory.
func NewServerConfig(t *testing.T) ServerConfig {
	t.Helper()

	tempDir := t.TempDir()
	httpPort, err := FindFreePort()
	if err != nil {
		t.Fatalf("failed to find free port for HTTP: %v", err)
	}

	return ServerConfig{
		Host:       "127.0.0.1",
		Port:       httpPort,
		HomeDir:    tempDir,
		ConfigFile: filepath.Join(tempDir, "config.yaml"),
		Logger:     Logger(t),
	}
}

// URL returns the server URL for the given config.
func (c ServerConfig) URL() string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(c.Host, c.Port))
}

// Logger returns a logger that is quiet unless FORMFILL_TEST_LOG is set.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	var w io.Writer = io.Discard
	if os.Getenv("FORMFILL_TEST_LOG") != "" {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// MockRegistry returns a registry holding only a mock provider that answers
// with reply.
func MockRegistry(reply string) (*providers.Registry, *providers.MockClient) {
	mock := providers.NewMockClient()
	mock.ResponseText = reply
	registry := providers.NewRegistry()
	registry.RegisterLLM(providers.MockClientName, mock)
	return registry, mock
}

// WaitForServer polls /health until the server answers.
func WaitForServer(ctx context.Context, url string, timeout time.Duration) error {
	if err := api.NewClient(url).WaitReady(ctx, timeout); err != nil {
		return fmt.Errorf("server not ready after %v: %w", timeout, err)
	}
	return nil
}

// WaitForShutdown waits for a channel to receive a value or timeout.
func WaitForShutdown(done <-chan error, timeout time.Duration) error {
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for shutdown")
	}
}

// HTTPClient returns an HTTP client for making requests.
func HTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// FindFreePort finds an available TCP port and returns it as a string.
func FindFreePort() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer listener.Close()
	return fmt.Sprintf("%d", listener.Addr().(*net.TCPAddr).Port), nil
}

// StartServer is a helper type for managing server lifecycle in tests.
// Usage:
//
//	cfg := testutil.NewServerConfig(t)
//	srv, err := server.New(server.Config{...from cfg...})
//	starter := testutil.StartServer{Cancel: cancel, Done: done}
//	t.Cleanup(func() { starter.Stop() })
type StartServer struct {
	Cancel context.CancelFunc
	Done   <-chan error
}

// Stop cancels the server context and waits for shutdown.
func (s *StartServer) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
	if s.Done != nil {
		<-s.Done
	}
}

// StatusResponse matches the server's StatusResponse structure.
type StatusResponse struct {
	Server    string `json:"server"`
	Version   string `json:"version"`
	Providers struct {
		LLM     []string `json:"llm"`
		Default string   `json:"default"`
	} `json:"providers"`
	Forms    []string `json:"forms"`
	Sessions struct {
		Open      int `json:"open"`
		Submitted int `json:"submitted"`
	} `json:"sessions"`
	LLMCalls int `json:"llm_calls"`
}

// GetStatus fetches the /status endpoint and returns the parsed response.
func GetStatus(url string) (*StatusResponse, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url + "/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
