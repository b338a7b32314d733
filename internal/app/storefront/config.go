package storefront

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	storefrontclient "github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	"github.com/Apurer/go-water-storefront/internal/clients/http/payments"
	pgstore "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/persistence/postgres"
	redisstore "github.com/Apurer/go-water-storefront/internal/domains/session/adapters/persistence/redis"
	platformredis "github.com/Apurer/go-water-storefront/internal/platform/redis"
)

// StoreKind selects the session key/value adapter.
type StoreKind string

const (
	StoreFile     StoreKind = "file"
	StoreMemory   StoreKind = "memory"
	StoreRedis    StoreKind = "redis"
	StorePostgres StoreKind = "postgres"
)

const defaultAPIBase = "http://localhost:5000"

// Config carries environment-driven settings for the storefront client processes.
type Config struct {
	APIBase     string
	APIPrefix   string
	HTTPTimeout time.Duration
	// UserAgent is empty to keep the client default.
	UserAgent string

	// Demo is nil when STOREFRONT_DEMO is unset; the persisted flag decides then.
	Demo *bool

	Store          StoreKind
	StorePath      string
	Redis          platformredis.Config
	RedisKeyPrefix string
	PostgresDSN    string
	StoreNamespace string
	SessionTTL     time.Duration

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	PaymentAPIBase        string
	PaymentPublishableKey string
	PaymentMethodID       string
}

// TemporalEnabled reports whether checkout should run as a Temporal workflow.
func (c Config) TemporalEnabled() bool {
	return c.TemporalAddress != "" && !c.TemporalDisabled
}

// LoadEnvFile seeds the environment from STOREFRONT_ENV_FILE (default .env).
// Variables already set win; a missing file is not an error.
func LoadEnvFile() error {
	path := envDefault("STOREFRONT_ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		APIBase:               envDefault("STOREFRONT_API_BASE", defaultAPIBase),
		APIPrefix:             envDefault("STOREFRONT_API_PREFIX", storefrontclient.DefaultPrefix),
		UserAgent:             strings.TrimSpace(os.Getenv("STOREFRONT_USER_AGENT")),
		Store:                 StoreKind(strings.ToLower(envDefault("STOREFRONT_STORE", string(StoreFile)))),
		StorePath:             strings.TrimSpace(os.Getenv("STOREFRONT_STORE_PATH")),
		RedisKeyPrefix:        envDefault("REDIS_KEY_PREFIX", redisstore.DefaultKeyPrefix),
		PostgresDSN:           strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		StoreNamespace:        envDefault("STOREFRONT_STORE_NAMESPACE", pgstore.DefaultNamespace),
		TemporalAddress:       strings.TrimSpace(os.Getenv("TEMPORAL_ADDRESS")),
		TemporalNamespace:     envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:      isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		PaymentAPIBase:        envDefault("PAYMENT_API_BASE", payments.DefaultBaseURL),
		PaymentPublishableKey: strings.TrimSpace(os.Getenv("PAYMENT_PUBLISHABLE_KEY")),
		PaymentMethodID:       strings.TrimSpace(os.Getenv("PAYMENT_METHOD_ID")),
	}
	if raw := strings.TrimSpace(os.Getenv("STOREFRONT_DEMO")); raw != "" {
		demo := isTruthy(raw)
		cfg.Demo = &demo
	}
	if raw := strings.TrimSpace(os.Getenv("STOREFRONT_HTTP_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("STOREFRONT_HTTP_TIMEOUT must be a non-negative duration")
		}
		cfg.HTTPTimeout = timeout
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a non-negative integer")
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}

	switch cfg.Store {
	case StoreFile:
		if cfg.StorePath == "" {
			path, err := defaultStorePath()
			if err != nil {
				return Config{}, err
			}
			cfg.StorePath = path
		}
	case StoreMemory:
	case StoreRedis:
		redisCfg, err := platformredis.ConfigFromEnv(os.Getenv)
		if err != nil {
			return Config{}, err
		}
		cfg.Redis = redisCfg
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when STOREFRONT_STORE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("STOREFRONT_STORE must be one of file, memory, redis, postgres; got %q", cfg.Store)
	}
	return cfg, nil
}

func defaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory (set STOREFRONT_STORE_PATH): %w", err)
	}
	return filepath.Join(dir, "water-storefront", "session.json"), nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}
