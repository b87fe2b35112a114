package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	cfg := Load()

	if cfg.Recurring.Concurrency != 10 {
		t.Errorf("Recurring.Concurrency = %d, want 10", cfg.Recurring.Concurrency)
	}
	if cfg.Recurring.MaxAttempts != 3 {
		t.Errorf("Recurring.MaxAttempts = %d, want 3", cfg.Recurring.MaxAttempts)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("Redis.URL = %q, want empty", cfg.Redis.URL)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECURRING_INTERVAL", "30m")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recurring.Interval != 30*time.Minute {
		t.Errorf("Recurring.Interval = %v, want 30m", cfg.Recurring.Interval)
	}
	if cfg.Email.WorkerEnabled {
		t.Error("Email.WorkerEnabled = true, want false")
	}
	if got := cfg.Server.CORSOrigins; len(got) != 2 || got[1] != "https://b.example.com" {
		t.Errorf("Server.CORSOrigins = %v", got)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Database.MaxOpenConns = %d, want default 25 on parse failure", cfg.Database.MaxOpenConns)
	}
}
