package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hnsync/adapter/hackernews"
	"hnsync/internal/helper"
)

type Config struct {
	ListURL      string
	ItemURL      string
	FetchTimeout time.Duration
	MaxStories   int
	ItemRetries  int
	RetryBackoff time.Duration
	MaxBackoff   time.Duration

	DefaultInterval time.Duration
	DefaultWorkers  int

	DatabaseURL string
	PGHost      string
	PGPort      int
	PGUser      string
	PGPassword  string
	PGDatabase  string

	RedisURL string

	ControlAddr     string
	APIAddr         string
	FrontendOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the environment. Unparsable
// numbers and durations fall back to their defaults; invalid endpoint URLs
// are an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListURL:      getenv("HN_LIST_URL", hackernews.DefaultListURL),
		ItemURL:      getenv("HN_ITEM_URL", hackernews.DefaultItemURL),
		FetchTimeout: parseDurationEnv("HN_FETCH_TIMEOUT", 500*time.Second),
		MaxStories:   parseIntEnv("HN_MAX_STORIES", 0),
		ItemRetries:  parseIntEnv("HN_ITEM_RETRIES", 1),
		RetryBackoff: parseDurationEnv("HN_RETRY_BACKOFF", time.Second),
		MaxBackoff:   parseDurationEnv("HN_MAX_BACKOFF", 30*time.Second),

		DefaultInterval: parseDurationEnv("CLI_APP_TIMER_INTERVAL", 15*time.Minute),
		DefaultWorkers:  parseIntEnv("CLI_APP_WORKERS_COUNT", 4),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		PGHost:      getenv("POSTGRES_HOST", "localhost"),
		PGPort:      parseIntEnv("POSTGRES_PORT", 5432),
		PGUser:      getenv("POSTGRES_USER", "postgres"),
		PGPassword:  getenv("POSTGRES_PASSWORD", "changeme"),
		PGDatabase:  getenv("POSTGRES_DBNAME", "hnsync"),

		RedisURL: os.Getenv("REDIS_URL"),

		ControlAddr:     getenv("CONTROL_ADDR", "127.0.0.1:8088"),
		APIAddr:         getenv("API_ADDR", ":8080"),
		FrontendOrigins: splitList(os.Getenv("FRONTEND_ORIGINS")),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "tint"),
	}

	if err := helper.IsValidURL(cfg.ListURL); err != nil {
		return cfg, fmt.Errorf("HN_LIST_URL: %w", err)
	}
	if strings.Count(cfg.ItemURL, "%d") != 1 {
		return cfg, fmt.Errorf("HN_ITEM_URL must contain exactly one %%d: %s", cfg.ItemURL)
	}
	if err := helper.IsValidURL(strings.Replace(cfg.ItemURL, "%d", "0", 1)); err != nil {
		return cfg, fmt.Errorf("HN_ITEM_URL: %w", err)
	}
	if cfg.DefaultWorkers <= 0 {
		return cfg, fmt.Errorf("CLI_APP_WORKERS_COUNT must be > 0, got %d", cfg.DefaultWorkers)
	}
	if cfg.DefaultInterval <= 0 {
		return cfg, fmt.Errorf("CLI_APP_TIMER_INTERVAL must be > 0, got %s", cfg.DefaultInterval)
	}
	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the
// POSTGRES_* pieces.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PGUser, c.PGPassword),
		Host:     fmt.Sprintf("%s:%d", c.PGHost, c.PGPort),
		Path:     "/" + c.PGDatabase,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c Config) ClientOptions() hackernews.Options {
	return hackernews.Options{
		ListURL:    c.ListURL,
		ItemURL:    c.ItemURL,
		Timeout:    c.FetchTimeout,
		MaxStories: c.MaxStories,
		Retries:    c.ItemRetries,
		Backoff:    c.RetryBackoff,
		MaxBackoff: c.MaxBackoff,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
