package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr                 string        `env:"APP_ADDR" envDefault:":8080"`
	Environment          string        `env:"APP_ENV" envDefault:"development"`
	DatabaseURL          string        `env:"DATABASE_URL"`
	JWTSecret            string        `env:"JWT_SECRET"`
	DataEncryptionKey    string        `env:"DATA_ENCRYPTION_KEY"`
	OperatorEmail        string        `env:"OPERATOR_EMAIL"`
	OperatorPasswordHash string        `env:"OPERATOR_PASSWORD_HASH"`
	OperatorRole         string        `env:"OPERATOR_ROLE" envDefault:"operator"`
	TokenTTL             time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	MaxBodyBytes         int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute   int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	BreachCheckInterval  time.Duration `env:"BREACH_CHECK_INTERVAL" envDefault:"15m"`
	JobQueueSize         int           `env:"JOB_QUEUE_SIZE" envDefault:"128"`
	MetricsEnabled       bool          `env:"METRICS_ENABLED" envDefault:"true"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if c.IsProduction() {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production to seal subject exports")
		}
	}
	if c.OperatorEmail != "" {
		if strings.TrimSpace(c.OperatorPasswordHash) == "" {
			return fmt.Errorf("OPERATOR_PASSWORD_HASH must be set when OPERATOR_EMAIL is set")
		}
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set when OPERATOR_EMAIL is set")
		}
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.BreachCheckInterval < 0 {
		return fmt.Errorf("BREACH_CHECK_INTERVAL must not be negative")
	}
	if c.JobQueueSize <= 0 {
		return fmt.Errorf("JOB_QUEUE_SIZE must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}
