package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultRateLimit is applied to the v1 API group when RATE_LIMIT is unset or
// unparseable. The format is limiter's "<count>-<period>" notation.
const DefaultRateLimit = "300-M"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit is the per-IP request allowance for the v1 API group.
	RateLimit string

	// CORSAllowedOrigins lists the origins the invoice UI is served from.
	// Empty means allow all, which is only sensible outside production.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", DefaultRateLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = DefaultRateLimit
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")
	if len(cfg.CORSAllowedOrigins) == 0 && cfg.IsProduction {
		log.Println("Warning: CORS_ALLOWED_ORIGINS not set in production. All origins will be allowed.")
	}

	return cfg, nil
}
