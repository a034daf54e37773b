package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	APIBaseURL            string        `mapstructure:"api_base_url"`
	ReservationsPath      string        `mapstructure:"reservations_path"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	ReportersFile         string        `mapstructure:"reporters_file"`

	StorageType            string        `mapstructure:"storage_type"`
	JournalPath            string        `mapstructure:"journal_path"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"base-url":  "api_base_url",
	"log-level": "log_level",
	"timeout":   "request_timeout_seconds",
	"reporters": "reporters_file",
	"storage":   "storage_type",
	"journal":   "journal_path",
}

// RegisterFlags declares the global flags that override configuration keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "reservations API base URL")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Int64("timeout", 0, "request timeout in seconds (0 disables)")
	fs.String("reporters", "", "path to the reporters YAML/JSON file")
	fs.String("storage", "", "journal storage type (none, bbolt)")
	fs.String("journal", "", "path to the bbolt journal file")
}

// Load reads configuration from environment variables, config files and any changed flags in fs.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "reservation-desk")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("reservations_path", "/api/reservations")
	v.SetDefault("request_timeout_seconds", 0)
	v.SetDefault("reporters_file", "")
	v.SetDefault("storage_type", "none")
	v.SetDefault("journal_path", "./data/journal.db")
	v.SetDefault("journal_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api_base_url %q (must be an absolute URL)", cfg.APIBaseURL)
	}
	cfg.ReservationsPath = "/" + strings.Trim(strings.TrimSpace(cfg.ReservationsPath), "/")
	if cfg.ReservationsPath == "/" {
		return nil, fmt.Errorf("invalid reservations_path (must not be empty)")
	}

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.JournalTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
	}
	if cfg.JournalCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.JournalTTL = time.Duration(cfg.JournalTTLSeconds) * time.Second
	cfg.JournalCleanupInterval = time.Duration(cfg.JournalCleanupSeconds) * time.Second

	return &cfg, nil
}
