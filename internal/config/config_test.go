package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v4"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("HABITS_CONFIG", configFile)
	return configFile
}

func TestLoad_MissingConfig(t *testing.T) {
	t.Setenv("HABITS_CONFIG", "nonexistent.yaml")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoadOrDefault_MissingConfig(t *testing.T) {
	t.Setenv("HABITS_CONFIG", filepath.Join(t.TempDir(), "nonexistent.yaml"))
	cfg, err := LoadOrDefault()
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.DBDriver != "bolt" || cfg.Analytics.LookbackDays != 365 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	t.Setenv("HABITS_CONFIG", configFile)

	c := Default()
	c.DBDriver = "sqlite"
	d, err := yaml.Marshal(&c)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configFile, d, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal("error opening config:", err)
	}
	if got.DBDriver != "sqlite" {
		t.Fatalf("db_driver=%q want sqlite", got.DBDriver)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	writeConfig(t, `
db_path: /tmp/h.db
analytics:
  lookback_days: 90
scheduler:
  resume_interval: 15m
`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/h.db" || cfg.Analytics.LookbackDays != 90 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Scheduler.ResumeInterval != 15*time.Minute {
		t.Fatalf("resume_interval=%s want 15m", cfg.Scheduler.ResumeInterval)
	}
	if cfg.ListenAddr != "127.0.0.1:8080" || cfg.Analytics.WeekStartDay != 1 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	writeConfig(t, "db_path: file.db\n")
	t.Setenv("HABITS_DB_PATH", "env.db")
	t.Setenv("HABITS_LOOKBACK_DAYS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "env.db" || cfg.Analytics.LookbackDays != 30 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"driver":   "db_driver: postgres\n",
		"lookback": "analytics:\n  lookback_days: 0\n",
		"week":     "analytics:\n  week_start_day: 7\n",
		"nudge":    "nudge:\n  enabled: true\n",
		"yaml":     "db_path: [unterminated\n",
	}
	for name, body := range tests {
		writeConfig(t, body)
		if _, err := Load(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoad_BadEnvInteger(t *testing.T) {
	writeConfig(t, "{}\n")
	t.Setenv("HABITS_LOOKBACK_DAYS", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer lookback")
	}
}
