package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/config"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/logging"
	"github.com/sirupsen/logrus"
)

func TestNew_LevelAndFormat(t *testing.T) {
	logger, err := logging.New(config.LogConfig{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", logger.Formatter)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := logging.New(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	if _, err := logging.New(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player-stats.log")

	logger, err := logging.New(config.LogConfig{Level: "info", Format: "text", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.WithField("players", 5).Info("Dataset loaded")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Dataset loaded") {
		t.Errorf("expected log line in file, got %q", string(data))
	}
}
