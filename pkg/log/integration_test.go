package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	fkErrors "github.com/YuminosukeSato/featurekit/pkg/errors"
)

// TestLoggerInterface tests the TestLogger implementation of Logger
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", "operation", "test")
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", fmt.Errorf("test error"), "error_code", "TEST_ERROR")

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField("error", "test error") {
		t.Error("Expected leading error to be stored under the error key")
	}
}

// TestLoggerWith tests context fields inherited through With
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "FeatureAugmenter",
		ComponentKey, "preprocessing",
	)
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	if !testLogger.ContainsField(ModelNameKey, "FeatureAugmenter") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "preprocessing") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

// TestLogLevelFiltering tests that records below the minimum level are dropped
func TestLogLevelFiltering(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelWarn)

	testLogger.Debug("debug message")
	testLogger.Info("info message")
	testLogger.Warn("warning message")
	testLogger.Error("error message")

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 log entries, got %d", len(entries))
	}

	ctx := context.Background()
	if testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Info should not be enabled at Warn level")
	}
	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Error should be enabled at Warn level")
	}

	testLogger.Clear()
	if entries, _ := testLogger.GetLogEntries(); len(entries) != 0 {
		t.Errorf("Expected no entries after Clear, got %d", len(entries))
	}
}

func TestZerologProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(&buf, LevelInfo)

	logger := provider.GetLoggerWithName("preprocessing.augmenter")
	logger.Debug("hidden")
	logger.Info("Fitted ratio caps", SamplesKey, 3, ColumnKey, "x13")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["message"] != "Fitted ratio caps" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[ComponentKey] != "preprocessing.augmenter" {
		t.Errorf("component = %v", entry[ComponentKey])
	}
	if entry[SamplesKey] != 3.0 {
		t.Errorf("samples = %v", entry[SamplesKey])
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("Debug should not be enabled at Info level")
	}

	provider.SetLevel(LevelDebug)
	buf.Reset()
	provider.GetLogger().With(ModelNameKey, "FeatureAugmenter").Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") || !strings.Contains(buf.String(), "FeatureAugmenter") {
		t.Errorf("expected debug record with context, got %q", buf.String())
	}
}

func TestWarningsRoutedToProvider(t *testing.T) {
	provider, _ := NewTestLoggerProvider(LevelDebug)
	SetProvider(provider)
	defer SetProvider(NewZerologProvider(os.Stderr, LevelInfo))

	fkErrors.Warn(fkErrors.NewNonFiniteRatioWarning("x13", 1, 2))

	if !provider.Logger().ContainsField(ComponentKey, "warnings") {
		t.Error("expected warning logged by the warnings component")
	}
	if !provider.Logger().ContainsMessage("keeps 1 -Inf and 2 NaN") {
		t.Error("expected warning text in log output")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if err := SetupLogger("nope"); err == nil {
		t.Error("SetupLogger should reject an invalid level")
	}
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil)))

	err := fkErrors.NewMissingColumnError("Transform", "x2", []string{"x1", "x3"})
	logger.Error("transform failed", ErrAttr(err))

	var entry map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &entry); jsonErr != nil {
		t.Fatalf("output is not JSON: %v", jsonErr)
	}
	trace, ok := entry[StacktraceAttrKey].(string)
	if !ok || trace == "" {
		t.Errorf("expected %q attribute, got %v", StacktraceAttrKey, entry)
	}
}
