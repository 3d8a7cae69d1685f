package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerFansOutToBothWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("ranked agenda", "vendor", "acme", "items", 3)

	// Text handler on the stderr side.
	if !strings.Contains(stderr.String(), "ranked agenda") {
		t.Errorf("stderr output missing message: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "vendor=acme") {
		t.Errorf("stderr output missing attr: %q", stderr.String())
	}

	// JSON handler on the file side.
	var entry map[string]any
	if err := json.Unmarshal(file.Bytes(), &entry); err != nil {
		t.Fatalf("file output is not JSON: %v (%q)", err, file.String())
	}
	if entry["msg"] != "ranked agenda" {
		t.Errorf("file msg = %v, want 'ranked agenda'", entry["msg"])
	}
	if entry["vendor"] != "acme" {
		t.Errorf("file vendor = %v, want acme", entry["vendor"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelWarn)

	logger.Info("too quiet")
	if stderr.Len() != 0 || file.Len() != 0 {
		t.Errorf("info should be filtered at warn level: stderr=%q file=%q",
			stderr.String(), file.String())
	}

	logger.Warn("write failed", "op", "escalate")
	if !strings.Contains(stderr.String(), "write failed") {
		t.Errorf("warn should pass: %q", stderr.String())
	}
	if !strings.Contains(file.String(), "escalate") {
		t.Errorf("warn should reach the file side: %q", file.String())
	}
}
