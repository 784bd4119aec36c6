package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/allenday/mtf/internal/errors"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("graph built", "nodes", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "graph built" {
		t.Errorf("msg = %v, want %q", entry["msg"], "graph built")
	}
	if entry["nodes"] != float64(7) {
		t.Errorf("nodes = %v, want 7", entry["nodes"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	logger.Warn("dangling dependency", "target", "ghost")

	out := buf.String()
	if !strings.Contains(out, "dangling dependency") {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, "target=ghost") {
		t.Errorf("output missing attribute: %s", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-severity entries leaked: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.With("plan", "plan.xml").Info("ready query")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["plan"] != "plan.xml" {
		t.Errorf("plan = %v, want plan.xml", entry["plan"])
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	err := errors.NewPlanSchemaError("plan.xml", nil)
	logger.WithError(err).Error("build failed")

	var entry map[string]any
	if jerr := json.Unmarshal(buf.Bytes(), &entry); jerr != nil {
		t.Fatalf("output is not JSON: %v", jerr)
	}
	if entry["error_code"] != string(errors.ErrCodePlanSchema) {
		t.Errorf("error_code = %v, want %s", entry["error_code"], errors.ErrCodePlanSchema)
	}
	if _, ok := entry["suggestions"]; !ok {
		t.Error("suggestions missing from log entry")
	}
}

func TestLogger_WithErrorNil(t *testing.T) {
	logger := Default()
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &bytes.Buffer{}})

	ctx := context.Background()
	if logger.Enabled(ctx, LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"console", FormatText},
		{"nonsense", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetDefaultLogger(t *testing.T) {
	original := DefaultLogger()
	defer SetDefaultLogger(original)

	var buf bytes.Buffer
	custom := New(Config{Level: LevelDebug, Format: FormatText, Output: &buf})
	SetDefaultLogger(custom)

	if DefaultLogger() != custom {
		t.Error("DefaultLogger() did not return the configured logger")
	}

	DefaultLogger().Debug("through the global")
	if !strings.Contains(buf.String(), "through the global") {
		t.Errorf("global logger did not write to configured output: %s", buf.String())
	}
}
