package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
)

type Config struct {
	Port            string  `mapstructure:"PORT"`
	Env             string  `mapstructure:"ENV"`
	StorageBackend  string  `mapstructure:"STORAGE_BACKEND"`
	DataDir         string  `mapstructure:"DATA_DIR"`
	DatabaseURL     string  `mapstructure:"DATABASE_URL"`
	SecretKey       string  `mapstructure:"SECRET_KEY"`
	AdminUsername   string  `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string  `mapstructure:"ADMIN_PASSWORD"`
	TokenTTLMinutes int     `mapstructure:"TOKEN_TTL_MINUTES"`
	CORSOrigins     string  `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORAGE_BACKEND", BackendJSON)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("TOKEN_TTL_MINUTES", 30)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORAGE_BACKEND")
	v.BindEnv("DATA_DIR")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("SECRET_KEY")
	v.BindEnv("ADMIN_USERNAME")
	v.BindEnv("ADMIN_PASSWORD")
	v.BindEnv("TOKEN_TTL_MINUTES")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// TokenTTL returns the access-token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Validate checks that the configuration is safe to run. Missing secrets are
// a fatal startup error, never a runtime-recoverable one.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if c.StorageBackend != BackendJSON && c.StorageBackend != BackendPostgres {
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendJSON, BackendPostgres, c.StorageBackend)
	}
	if c.StorageBackend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND is %q", BackendPostgres)
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", c.TokenTTLMinutes)
	}
	return nil
}
