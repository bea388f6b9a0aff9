package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadSecrets(t *testing.T) {
	t.Setenv(EnvPracticumToken, "p-token")
	t.Setenv(EnvTelegramToken, "t-token")
	t.Setenv(EnvTelegramChatID, "123456789")

	s, err := LoadSecrets()
	if err != nil {
		t.Fatalf("LoadSecrets: %v", err)
	}
	if s.PracticumToken != "p-token" || s.TelegramToken != "t-token" || s.ChatID != 123456789 {
		t.Fatalf("unexpected secrets: %+v", s)
	}
}

func TestLoadSecretsAllMissing(t *testing.T) {
	t.Setenv(EnvPracticumToken, "")
	t.Setenv(EnvTelegramToken, "")
	t.Setenv(EnvTelegramChatID, "")

	_, err := LoadSecrets()
	var missing *MissingSecretsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingSecretsError, got %v", err)
	}
	if len(missing.Names) != 3 {
		t.Fatalf("expected all 3 names, got %v", missing.Names)
	}
	for _, name := range []string{EnvPracticumToken, EnvTelegramToken, EnvTelegramChatID} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name %s", err, name)
		}
	}
}

func TestLoadSecretsBadChatID(t *testing.T) {
	t.Setenv(EnvPracticumToken, "p")
	t.Setenv(EnvTelegramToken, "t")
	t.Setenv(EnvTelegramChatID, "not-a-number")

	if _, err := LoadSecrets(); err == nil {
		t.Fatal("expected error for non-integer chat id")
	}
}

func TestManagerLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
schedule: "10m"
logging:
  level: debug
storage:
  driver: file
  path: ./history.jsonl
health:
  enabled: true
  addr: "127.0.0.1:9999"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := NewManager(path)
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schedule != "10m" {
		t.Fatalf("Schedule = %q, want 10m", cfg.Schedule)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Storage == nil || cfg.Storage.Driver != "file" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if !cfg.Health.Enabled || cfg.Health.Addr != "127.0.0.1:9999" {
		t.Fatalf("unexpected health config: %+v", cfg.Health)
	}
	if got := m.Get(); got != cfg {
		t.Fatal("Get should return the committed config")
	}
}

func TestManagerRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("retry_period: 600\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestManagerMissingFileUsesDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.yaml"))
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schedule != DefaultSchedule {
		t.Fatalf("Schedule = %q, want %q", cfg.Schedule, DefaultSchedule)
	}
	if !cfg.Logging.ConsoleEnabled() {
		t.Fatal("console logging should default to on")
	}
}

func TestParseDurationField(t *testing.T) {
	t.Parallel()
	if d, err := ParseDurationField("request_timeout", "45s"); err != nil || d != 45*time.Second {
		t.Fatalf("got (%v, %v)", d, err)
	}
	if d, err := ParseDurationField("request_timeout", ""); err != nil || d != 0 {
		t.Fatalf("empty should be (0, nil), got (%v, %v)", d, err)
	}
	if _, err := ParseDurationField("request_timeout", "ten minutes"); err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if _, err := ParseDurationField("request_timeout", "-1s"); err == nil {
		t.Fatal("expected error for negative duration")
	}
	if d, err := ParseDurationOrDefault("x", "", time.Minute); err != nil || d != time.Minute {
		t.Fatalf("default not applied: (%v, %v)", d, err)
	}
}
