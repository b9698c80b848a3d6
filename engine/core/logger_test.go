package core

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, true},
		{"TRACE", slog.LevelDebug, true},
		{" info ", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}

	buf.Reset()
	NewLogger(&buf, "loud")
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Errorf("no warning for unknown level: %q", buf.String())
	}
}

func TestSetLoggerNil(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() = nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger reports enabled")
	}
}
