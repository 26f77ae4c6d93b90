package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/config"
)

func TestNewWithWriter_JSONDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Level: "info", Format: "json"}, "1.2.3")

	logger.Info("component registered", "component", "eyes1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != ServiceName {
		t.Errorf("service = %v, want %s", entry["service"], ServiceName)
	}
	if entry["version"] != "1.2.3" {
		t.Errorf("version = %v, want 1.2.3", entry["version"])
	}
	if entry["component"] != "eyes1" {
		t.Errorf("component = %v, want eyes1", entry["component"])
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Format: "text"}, "dev")
	logger.Info("hello")

	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("text output = %q, want msg=hello", buf.String())
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Level: "warn"}, "dev")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn not logged: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{}, "dev").With("component", "engine")
	logger.Info("tick")

	if !strings.Contains(buf.String(), `"component":"engine"`) {
		t.Errorf("With() attribute missing: %q", buf.String())
	}
}

func TestNew_Discard(t *testing.T) {
	logger := New(config.LoggingConfig{Output: "discard"}, "dev")
	if logger == nil || logger.Logger == nil {
		t.Fatal("New() returned nil logger")
	}
	logger.Info("goes nowhere")
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}
