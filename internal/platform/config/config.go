package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Redis backs the cross-terminal resource assignment lock. Running
	// without it requires SingleTerminal to be set explicitly; the database
	// unique constraints remain the authoritative guard either way.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SingleTerminal bool

	// Authoritative time source for clock synchronization.
	TimeServerURL     string
	TimeServerTimeout time.Duration

	// Rate limit in ulule/limiter format, e.g. "100-M".
	RateLimit      string
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SINGLE_TERMINAL", false)
	viper.SetDefault("TIME_SERVER_URL", "")
	viper.SetDefault("TIME_SERVER_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.SingleTerminal = viper.GetBool("SINGLE_TERMINAL")

	cfg.TimeServerURL = viper.GetString("TIME_SERVER_URL")
	cfg.TimeServerTimeout = viper.GetDuration("TIME_SERVER_TIMEOUT")
	if cfg.TimeServerTimeout <= 0 {
		cfg.TimeServerTimeout = 5 * time.Second
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	return cfg, nil
}
