package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bizfeed.log")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("page loaded", zap.Int("count", 15))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"page loaded"`) || !strings.Contains(text, `"count":15`) {
		t.Fatalf("expected structured info entry, got %q", text)
	}
	if strings.Contains(text, "hidden") {
		t.Fatalf("debug entry must be filtered at info level: %q", text)
	}
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bizfeed.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("measured", zap.String("key", "post:1"))
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "post:1") {
		t.Fatalf("expected debug entry, got %q", data)
	}
}
