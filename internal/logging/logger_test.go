package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerUsesTextHandlerWithInfoLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled")
	}

	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerJSONIncludesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "JSON", Level: "debug", Service: "league-sim", Version: "v1", Output: &buf})

	logger.Debug("hello", FieldWeek, 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if line[FieldService] != "league-sim" || line[FieldVersion] != "v1" {
		t.Fatalf("expected service/version attrs, got %+v", line)
	}
	if line[FieldWeek] != float64(3) {
		t.Fatalf("expected week attr, got %+v", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	scoped := NewLogger(Config{Output: &buf})
	fallback := NewLogger(Config{})

	ctx := WithLogger(context.Background(), scoped)
	if got := FromContext(ctx, fallback); got != scoped {
		t.Fatal("expected scoped logger from context")
	}
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Fatal("expected fallback when context has no logger")
	}
	if got := WithLogger(ctx, nil); got != ctx {
		t.Fatal("expected nil logger to leave context untouched")
	}

	FromContext(ctx, fallback).Info("scoped")
	if !strings.Contains(buf.String(), "scoped") {
		t.Fatalf("expected scoped output, got %q", buf.String())
	}
}
