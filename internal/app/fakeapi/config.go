package fakeapi

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
)

// Config carries environment-driven settings for the fake API process.
type Config struct {
	Port             string
	Prefix           string
	SigningSecret    string
	TokenTTL         time.Duration
	ExposeResetToken bool
	SeedName         string
	SeedEmail        string
	SeedPassword     string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:             envDefault("PORT", "8080"),
		Prefix:           envDefault("FAKEAPI_PREFIX", storefront.DefaultPrefix),
		SigningSecret:    strings.TrimSpace(os.Getenv("FAKEAPI_SECRET")),
		TokenTTL:         24 * time.Hour,
		ExposeResetToken: isTruthy(envDefault("FAKEAPI_EXPOSE_RESET_TOKENS", "true")),
		SeedName:         envDefault("FAKEAPI_SEED_NAME", "Demo Customer"),
		SeedEmail:        strings.TrimSpace(os.Getenv("FAKEAPI_SEED_EMAIL")),
		SeedPassword:     os.Getenv("FAKEAPI_SEED_PASSWORD"),
	}
	if raw := strings.TrimSpace(os.Getenv("FAKEAPI_TOKEN_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("FAKEAPI_TOKEN_TTL must be a positive duration")
		}
		cfg.TokenTTL = ttl
	}
	if cfg.SeedEmail != "" && cfg.SeedPassword == "" {
		return Config{}, fmt.Errorf("FAKEAPI_SEED_PASSWORD is required when FAKEAPI_SEED_EMAIL is set")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
