package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}

	InitLoggerWithWriter(config, &buf)

	Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if logEntry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", logEntry["service"])
	}

	if logEntry["version"] != "1.0.0" {
		t.Errorf("Expected version=1.0.0, got %v", logEntry["version"])
	}

	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}

	if logEntry["key"] != "value" {
		t.Errorf("Expected key=value, got %v", logEntry["key"])
	}
}

func TestTextLoggingLevelFilter(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "warn",
		Format:      "text",
		ServiceName: "test-service",
		Version:     "dev",
		Environment: "test",
	}

	InitLoggerWithWriter(config, &buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("should be filtered")) {
		t.Errorf("Info message should have been filtered, got: %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("should appear")) {
		t.Errorf("Warn message missing from output: %s", out)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Fatal("Expected no request ID on fresh context")
	}

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("Expected request ID to be present")
	}
	if got != id {
		t.Errorf("Expected request ID %q, got %q", id, got)
	}
}

func TestFromContextWithoutRequestID(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext should always return a logger")
	}
}

func TestLogLevelParsing(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
	}

	for input, want := range cases {
		c := Config{Level: input}
		if got := c.LogLevel().String(); got != want {
			t.Errorf("Level %q: expected %s, got %s", input, want, got)
		}
	}
}
