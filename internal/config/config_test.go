package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SCHEDULE_API_URL", "https://api.example.com/v1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTP_PORT != "8080" {
		t.Fatalf("HTTP_PORT = %q, want 8080", cfg.HTTP_PORT)
	}
	if cfg.SCHEDULE_API_TIMEOUT != 15*time.Second {
		t.Fatalf("timeout = %s, want 15s", cfg.SCHEDULE_API_TIMEOUT)
	}
	if cfg.KafkaEnabled() || cfg.JournalEnabled() {
		t.Fatal("kafka and journal should be disabled by default")
	}
}

func TestLoadConfig_RequiresAPIURL(t *testing.T) {
	t.Setenv("SCHEDULE_API_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without SCHEDULE_API_URL")
	}
}

func TestLoadConfig_RejectsRelativeURL(t *testing.T) {
	t.Setenv("SCHEDULE_API_URL", "/orders")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for relative URL")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SCHEDULE_API_URL", "http://localhost:9000")
	t.Setenv("SCHEDULE_API_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DB_STRING", "postgres://localhost/calendar")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SCHEDULE_API_TIMEOUT != 3*time.Second {
		t.Fatalf("timeout = %s, want 3s", cfg.SCHEDULE_API_TIMEOUT)
	}
	if !cfg.KafkaEnabled() || !cfg.JournalEnabled() {
		t.Fatal("expected kafka and journal enabled")
	}
}
