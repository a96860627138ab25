package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/config"
)

func TestNew_FileSink(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	path := filepath.Join(t.TempDir(), "logs", "elements.log")
	log, err := New(config.Log{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatal(err)
	}
	zap.S().Infow("element defined", "tag", "x-counter")
	zap.S().Debugw("hidden below info")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log lines = %d, want 1:\n%s", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["msg"] != "element defined" || entry["tag"] != "x-counter" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.Log{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
