package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{name: "console info", level: zapcore.InfoLevel},
		{name: "json debug", json: true, debug: true, level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.json, tt.debug)

			if !l.Core().Enabled(tt.level) {
				t.Fatalf("expected level %s to be enabled", tt.level)
			}

			if tt.level == zapcore.InfoLevel && l.Core().Enabled(zapcore.DebugLevel) {
				t.Fatalf("expected debug to be disabled")
			}
		})
	}
}

func TestJSONEntryLayout(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(zapcore.AddSync(&buf), true, false)

	WithSession(l, "42").Info("match decision parsed", zap.Duration("took", 1500*time.Millisecond))
	l.Debug("dropped")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single json entry, got %q: %v", buf.String(), err)
	}

	if entry[messageKey] != "match decision parsed" {
		t.Fatalf("unexpected message: %v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["took"] != "1.5s" {
		t.Fatalf("expected a readable duration, got %v", entry["took"])
	}
	if entry[FieldSessionID] != "42" {
		t.Fatalf("expected the session id, got %v", entry[FieldSessionID])
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatalf("expected caller in %v", entry)
	}
}
