package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"
)

const DefaultPath = "config.yaml"

type Config struct {
	APIBaseURL string          `yaml:"api_base_url"`
	ListenAddr string          `yaml:"listen_addr"`
	DBPath     string          `yaml:"db_path"`
	DBDriver   string          `yaml:"db_driver"`
	AuthToken  string          `yaml:"auth_token"`
	Log        LogConfig       `yaml:"log"`
	Analytics  AnalyticsConfig `yaml:"analytics"`
	Scheduler  SchedulerConfig `yaml:"scheduler"`
	Nudge      NudgeConfig     `yaml:"nudge"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AnalyticsConfig struct {
	LookbackDays int `yaml:"lookback_days"`
	WeekStartDay int `yaml:"week_start_day"`
}

type SchedulerConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ResumeInterval time.Duration `yaml:"resume_interval"`
	NudgeSpec      string        `yaml:"nudge_spec"`
}

type NudgeConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ResendAPIKey string `yaml:"resend_api_key"`
	Email        string `yaml:"email"`
	From         string `yaml:"from"`
}

func Default() Config {
	return Config{
		APIBaseURL: "http://127.0.0.1:8080",
		ListenAddr: "127.0.0.1:8080",
		DBPath:     "habits.db",
		DBDriver:   "bolt",
		Log:        LogConfig{Level: "info", Format: "text"},
		Analytics:  AnalyticsConfig{LookbackDays: 365, WeekStartDay: 1},
		Scheduler: SchedulerConfig{
			Enabled:        true,
			ResumeInterval: time.Hour,
			NudgeSpec:      "0 20 * * *",
		},
		Nudge: NudgeConfig{From: "onboarding@resend.dev"},
	}
}

// Path returns the config file location, honouring HABITS_CONFIG.
func Path() string {
	return getenv("HABITS_CONFIG", DefaultPath)
}

// Load reads the YAML file at Path over the defaults and then applies
// HABITS_* environment overrides. A missing file is an error.
func Load() (*Config, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault is Load, except a missing file falls back to defaults.
func LoadOrDefault() (*Config, error) {
	if _, err := os.Stat(Path()); os.IsNotExist(err) {
		cfg := Default()
		if err := applyEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, cfg.Validate()
	}
	return Load()
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "bolt", "sqlite":
	default:
		return fmt.Errorf("unsupported db_driver %q: want bolt or sqlite", c.DBDriver)
	}
	if c.Analytics.LookbackDays < 1 {
		return fmt.Errorf("analytics.lookback_days must be positive, got %d", c.Analytics.LookbackDays)
	}
	if c.Analytics.WeekStartDay < 0 || c.Analytics.WeekStartDay > 6 {
		return fmt.Errorf("analytics.week_start_day must be 0-6, got %d", c.Analytics.WeekStartDay)
	}
	if c.Nudge.Enabled && (c.Nudge.ResendAPIKey == "" || c.Nudge.Email == "") {
		return fmt.Errorf("nudge is enabled but resend_api_key or email is missing")
	}
	return nil
}

func applyEnv(c *Config) error {
	c.APIBaseURL = getenv("HABITS_API_BASE", c.APIBaseURL)
	c.ListenAddr = getenv("HABITS_LISTEN_ADDR", c.ListenAddr)
	c.DBPath = getenv("HABITS_DB_PATH", c.DBPath)
	c.DBDriver = getenv("HABITS_DB_DRIVER", c.DBDriver)
	c.AuthToken = getenv("HABITS_AUTH_TOKEN", c.AuthToken)
	c.Log.Level = getenv("HABITS_LOG_LEVEL", c.Log.Level)
	c.Nudge.ResendAPIKey = getenv("HABITS_RESEND_API_KEY", c.Nudge.ResendAPIKey)
	c.Nudge.Email = getenv("HABITS_NOTIFY_EMAIL", c.Nudge.Email)

	if v := os.Getenv("HABITS_LOOKBACK_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HABITS_LOOKBACK_DAYS must be a valid integer: %v", err)
		}
		c.Analytics.LookbackDays = n
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
