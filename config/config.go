package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all agent configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Local API
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig

	// Local-first data layer
	Store       StoreConfig
	Remote      RemoteConfig
	Replication ReplicationConfig

	// Integrations
	GoogleCalendar GoogleCalendarConfig
	GitHubWebhook  GitHubWebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// StoreConfig locates the embedded SQLite document store.
type StoreConfig struct {
	Path string
}

// RemoteConfig points at the authoritative Vision API.
type RemoteConfig struct {
	BaseURL   string
	LoginPath string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

type ReplicationConfig struct {
	Enabled      bool
	Identifier   string
	BatchSize    int
	Interval     time.Duration
	PushPerSec   float64
	PushBurst    int
	CycleTimeout time.Duration
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	LookaheadDays   int
}

// GitHubWebhookConfig enables POST /api/v1/integrations/github/webhook when Secret is set.
type GitHubWebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// A .env file in the working directory is loaded into the process environment first.
// Config file name: config.yaml, searched in ./config, ., $HOME/.vision, /etc/vision/
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.vision")
	viper.AddConfigPath("/etc/vision/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.CORS.AllowedOrigins = splitList(viper.GetString("cors.allowed_origins"))

	// Store
	cfg.Store.Path = viper.GetString("store.path")

	// Remote API
	cfg.Remote.BaseURL = strings.TrimRight(viper.GetString("remote.base_url"), "/")
	if apiURL := viper.GetString("next_public_api_url"); apiURL != "" {
		cfg.Remote.BaseURL = strings.TrimRight(apiURL, "/")
	}
	cfg.Remote.LoginPath = viper.GetString("remote.login_path")
	cfg.Remote.Timeout = viper.GetDuration("remote.timeout")
	cfg.Remote.CacheTTL = viper.GetDuration("remote.cache_ttl")

	// Replication
	cfg.Replication.Enabled = viper.GetBool("replication.enabled")
	cfg.Replication.Identifier = viper.GetString("replication.identifier")
	cfg.Replication.BatchSize = viper.GetInt("replication.batch_size")
	cfg.Replication.Interval = viper.GetDuration("replication.interval")
	cfg.Replication.PushPerSec = viper.GetFloat64("replication.push_per_sec")
	cfg.Replication.PushBurst = viper.GetInt("replication.push_burst")
	cfg.Replication.CycleTimeout = viper.GetDuration("replication.cycle_timeout")

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.LookaheadDays = viper.GetInt("google_calendar.lookahead_days")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// GitHub webhook
	cfg.GitHubWebhook.Secret = viper.GetString("github_webhook.secret")
	cfg.GitHubWebhook.AllowedIPs = splitList(viper.GetString("github_webhook.allowed_ips"))
	cfg.GitHubWebhook.RateLimitPerMin = viper.GetInt("github_webhook.rate_limit_per_min")
	if secret := viper.GetString("github_webhook_secret"); secret != "" {
		cfg.GitHubWebhook.Secret = secret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.host", "127.0.0.1")
	viper.SetDefault("http_server.port", 8787)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 600)
	viper.SetDefault("cors.allowed_origins", "http://localhost:3000")

	viper.SetDefault("store.path", "~/.vision/vision.db")

	viper.SetDefault("remote.base_url", "http://localhost:8000")
	viper.SetDefault("remote.login_path", "/login")
	viper.SetDefault("remote.timeout", "15s")
	viper.SetDefault("remote.cache_ttl", "1m")

	viper.SetDefault("replication.enabled", true)
	viper.SetDefault("replication.identifier", "task-sync-v1")
	viper.SetDefault("replication.batch_size", 100)
	viper.SetDefault("replication.interval", "30s")
	viper.SetDefault("replication.push_per_sec", 1.0)
	viper.SetDefault("replication.push_burst", 3)
	viper.SetDefault("replication.cycle_timeout", "1m")

	viper.SetDefault("google_calendar.token_path", "~/.vision/google-token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.lookahead_days", 7)

	viper.SetDefault("github_webhook.rate_limit_per_min", 60)
}

func (cfg *Config) validate() error {
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if cfg.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is required")
	}
	if cfg.Replication.BatchSize <= 0 {
		return fmt.Errorf("replication.batch_size must be positive, got %d", cfg.Replication.BatchSize)
	}
	if cfg.Replication.Interval <= 0 {
		return fmt.Errorf("replication.interval must be positive")
	}
	return nil
}

// splitList splits a comma separated value since viper does not parse arrays from env.
func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
