package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "service:\n  name: test-service\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Service.Name != "test-service" {
		t.Errorf("service name = %q", cfg.Service.Name)
	}
	if cfg.Service.Port != defaultServicePort {
		t.Errorf("port = %d, want default %d", cfg.Service.Port, defaultServicePort)
	}
	if cfg.Database.Host != defaultDBHost {
		t.Errorf("db host = %q, want default", cfg.Database.Host)
	}
	if cfg.Intake.DuplicateWindow != 60*time.Second {
		t.Errorf("duplicate window = %v, want 60s", cfg.Intake.DuplicateWindow)
	}
	if cfg.Intake.RateLimitBurst != cfg.Intake.RateLimitRPS {
		t.Errorf("burst = %d, want rps %d", cfg.Intake.RateLimitBurst, cfg.Intake.RateLimitRPS)
	}
	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("log level = %q, want default", cfg.Logging.Level)
	}
}

func TestLoadYAMLValues(t *testing.T) {
	path := writeConfigFile(t, `
service:
  port: 9000
database:
  host: db.internal
  sslmode: require
model:
  enabled: true
  service_url: http://model:9100
intake:
  duplicate_window: 90s
  rate_limit_rps: 10
  rate_limit_burst: 20
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Service.Port != 9000 {
		t.Errorf("port = %d", cfg.Service.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q", cfg.Database.Host)
	}
	if !cfg.Model.Enabled {
		t.Error("model should be enabled")
	}
	if cfg.Model.ServiceURL != "http://model:9100" {
		t.Errorf("model url = %q", cfg.Model.ServiceURL)
	}
	if cfg.Intake.DuplicateWindow != 90*time.Second {
		t.Errorf("duplicate window = %v", cfg.Intake.DuplicateWindow)
	}
	if cfg.Intake.RateLimitBurst != 20 {
		t.Errorf("burst = %d", cfg.Intake.RateLimitBurst)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "service:\n  port: 9000\n")

	t.Setenv("COMPLAINTS_PORT", "9001")
	t.Setenv("POSTGRES_HOST", "env-host")
	t.Setenv("INTAKE_DUPLICATE_WINDOW", "2m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Service.Port != 9001 {
		t.Errorf("port = %d, want env override 9001", cfg.Service.Port)
	}
	if cfg.Database.Host != "env-host" {
		t.Errorf("db host = %q, want env override", cfg.Database.Host)
	}
	if cfg.Intake.DuplicateWindow != 2*time.Minute {
		t.Errorf("duplicate window = %v, want 2m", cfg.Intake.DuplicateWindow)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetConfigPath(t *testing.T) {
	if got := GetConfigPath("default.yml"); got != "default.yml" {
		t.Errorf("got %q", got)
	}

	t.Setenv("CONFIG_PATH", "/etc/classifier/config.yml")
	if got := GetConfigPath("default.yml"); got != "/etc/classifier/config.yml" {
		t.Errorf("got %q", got)
	}
}
