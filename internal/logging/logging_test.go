package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.sink.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.WithFields(map[string]any{"b": 2, "a": 1}).Info("hello %s", "world")

	expected := "2024-01-02T03:04:05.000 [INFO] test: hello world {a=1, b=2}\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn)

	l.Debug("debug")
	l.Info("info")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Warn("warn")
	l.Error("error")
	out := buf.String()
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelError)
	child := l.WithComponent("rangeset")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	l.SetLevel(LevelDebug)
	child.Info("shown")
	if !strings.Contains(buf.String(), "component=rangeset") {
		t.Errorf("expected component field, got %q", buf.String())
	}
	if !child.Enabled(LevelDebug) {
		t.Error("child should observe the parent's level change")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("nothing")
	if NullLogger.Enabled(LevelError) {
		t.Error("NullLogger should never be enabled")
	}
	if OrNull(nil) != NullLogger {
		t.Error("OrNull(nil) should return NullLogger")
	}
}
