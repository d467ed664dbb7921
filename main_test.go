package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/survey-places/middleware"
)

func TestNewLogger(t *testing.T) {
	t.Run("json at warn", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "json", "warn")

		logger.Info("hidden")
		logger.Warn("shown", "key", "value")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("Expected JSON log line: %v", err)
		}
		if entry["msg"] != "shown" || entry["key"] != "value" {
			t.Errorf("Unexpected entry: %v", entry)
		}
	})

	t.Run("text defaults to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "", "")

		logger.Debug("hidden")
		logger.Info("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
			t.Errorf("Unexpected text output: %q", out)
		}
	})

	t.Run("debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "text", "DEBUG")
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("Expected debug to be enabled")
		}
	})
}

func TestSweepLimiterStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sweepLimiter(ctx, middleware.NewRateLimiter(1, 1, time.Minute, false))
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweepLimiter did not stop after cancel")
	}
}
