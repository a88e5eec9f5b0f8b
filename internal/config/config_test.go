package config

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"hnsync/adapter/hackernews"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HN_LIST_URL", "HN_ITEM_URL", "HN_FETCH_TIMEOUT", "DATABASE_URL", "CLI_APP_WORKERS_COUNT", "CLI_APP_TIMER_INTERVAL", "FRONTEND_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, hackernews.DefaultListURL, cfg.ListURL)
	assert.Equal(t, hackernews.DefaultItemURL, cfg.ItemURL)
	assert.Equal(t, 500*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4, cfg.DefaultWorkers)
	assert.Equal(t, 15*time.Minute, cfg.DefaultInterval)
	assert.Equal(t, "127.0.0.1:8088", cfg.ControlAddr)
	assert.Equal(t, 0, len(cfg.FrontendOrigins))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HN_LIST_URL", "http://localhost:9000/top.json")
	t.Setenv("HN_ITEM_URL", "http://localhost:9000/item/%d.json")
	t.Setenv("HN_FETCH_TIMEOUT", "3s")
	t.Setenv("HN_ITEM_RETRIES", "0")
	t.Setenv("CLI_APP_WORKERS_COUNT", "8")
	t.Setenv("CLI_APP_TIMER_INTERVAL", "not-a-duration")
	t.Setenv("FRONTEND_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.ItemRetries)
	assert.Equal(t, 8, cfg.DefaultWorkers)
	assert.Equal(t, 15*time.Minute, cfg.DefaultInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.FrontendOrigins)

	opts := cfg.ClientOptions()
	assert.Equal(t, "http://localhost:9000/item/%d.json", opts.ItemURL)
	assert.Equal(t, 3*time.Second, opts.Timeout)
}

func TestLoad_InvalidURLs(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"list not a url", "HN_LIST_URL", "top stories"},
		{"list bad scheme", "HN_LIST_URL", "ftp://example.com/top.json"},
		{"item without verb", "HN_ITEM_URL", "https://example.com/item.json"},
		{"item bad scheme", "HN_ITEM_URL", "file:///item/%d.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.NotEqual(t, nil, err)
		})
	}
}

func TestLoad_NonPositiveWorkers(t *testing.T) {
	t.Setenv("CLI_APP_WORKERS_COUNT", "0")

	_, err := Load()

	assert.NotEqual(t, nil, err)
}

func TestDSN(t *testing.T) {
	cfg := Config{PGHost: "db", PGPort: 5433, PGUser: "hn", PGPassword: "p@ss", PGDatabase: "hnsync"}
	assert.Equal(t, "postgres://hn:p%40ss@db:5433/hnsync?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://elsewhere/db"
	assert.Equal(t, "postgres://elsewhere/db", cfg.DSN())
}
