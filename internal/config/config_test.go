package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SEARCH_DEBOUNCE", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreSQLite, cfg.StoreDriver)
	require.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	require.Equal(t, 50, cfg.PageSize)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.Equal(t, "http://localhost:8001/api/v1", cfg.LocalAPIBaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreMemory, cfg.StoreDriver)
	require.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	require.Equal(t, 25, cfg.PageSize)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			ServerPort:      "8090",
			StoreDriver:     StoreMemory,
			SearchDebounce:  time.Millisecond,
			PageSize:        10,
			LocalAPIBaseURL: "http://localhost:8001/api/v1",
			ProdAPIBaseURL:  "https://api.example/api/v1",
		}
	}

	t.Run("accepts a minimal memory config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("postgres requires a database url", func(t *testing.T) {
		cfg := valid()
		cfg.StoreDriver = StorePostgres
		require.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("rejects unknown store drivers", func(t *testing.T) {
		cfg := valid()
		cfg.StoreDriver = "redis"
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects short session secrets", func(t *testing.T) {
		cfg := valid()
		cfg.SessionSecret = "short"
		require.ErrorContains(t, cfg.Validate(), "SESSION_SECRET")
	})
}
