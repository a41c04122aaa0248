package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")

	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("event_id", "e1").Info("checked in")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["event_id"] != "e1" || entry["msg"] != "checked in" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, "loud", "text")
	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("expected info fallback, got %s", logger.GetLevel())
	}
}
