package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"},
		{"fill"},
		{"mcp"},
		{"init"},
		{"version"},
		{"api", "sessions", "create"},
		{"api", "llmcalls", "stats"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd == rootCmd {
			t.Errorf("command %q not registered: %v", strings.Join(path, " "), err)
		}
	}
}

func TestNewLogger(t *testing.T) {
	defer func(prev string) { logLevel = prev }(logLevel)

	logLevel = "WARN"
	var buf bytes.Buffer
	logger, err := newLogger(&buf)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "form", "intake")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "form=intake") {
		t.Errorf("log output = %q", buf.String())
	}
	if logger.Enabled(context.Background(), -4) {
		t.Error("debug enabled at warn level")
	}

	logLevel = "loud"
	if _, err := newLogger(&buf); err == nil {
		t.Error("invalid level accepted")
	}
}
