package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	LogLevel                slog.Level

	// ConsolePublicURL is where admins reach the console; it drives the
	// local/production backend heuristic when no override is stored.
	ConsolePublicURL string
	APIBaseURL       string
	LocalAPIBaseURL  string
	ProdAPIBaseURL   string

	StoreDriver   string
	SQLitePath    string
	DatabaseURL   string
	DBMaxConns    int32
	DBMinConns    int32
	SessionSecret string

	SearchDebounce    time.Duration
	PageSize          int
	TemplateDir       string
	CORSOrigins       []string
	RateLimitRPM      int
	LoginRateLimitRPM int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8090"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		LogLevel:                getLevel("LOG_LEVEL", slog.LevelInfo),
		ConsolePublicURL:        getEnv("CONSOLE_PUBLIC_URL", "http://localhost:8090"),
		APIBaseURL:              strings.TrimSpace(os.Getenv("API_BASE_URL")),
		LocalAPIBaseURL:         getEnv("LOCAL_API_BASE_URL", "http://localhost:8001/api/v1"),
		ProdAPIBaseURL:          getEnv("PROD_API_BASE_URL", "https://api.ardena.xyz/api/v1"),
		StoreDriver:             strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite)),
		SQLitePath:              getEnv("SQLITE_PATH", "./state/console.sqlite"),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 4)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		SessionSecret:           strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SearchDebounce:          getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		PageSize:                getInt("PAGE_SIZE", 50),
		TemplateDir:             strings.TrimSpace(os.Getenv("TEMPLATE_DIR")),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 600),
		LoginRateLimitRPM:       getInt("LOGIN_RATE_LIMIT_RPM", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH cannot be empty when STORE_DRIVER=sqlite")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
		if c.DBMaxConns <= 0 {
			return fmt.Errorf("DB_MAX_CONNS must be positive")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: sqlite|postgres|memory")
	}

	if c.SessionSecret != "" && len(c.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}

	if c.SearchDebounce <= 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must be positive")
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}

	if strings.TrimSpace(c.LocalAPIBaseURL) == "" || strings.TrimSpace(c.ProdAPIBaseURL) == "" {
		return fmt.Errorf("LOCAL_API_BASE_URL and PROD_API_BASE_URL cannot be empty")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getLevel(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}

	return level
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
