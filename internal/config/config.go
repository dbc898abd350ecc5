// Package config loads process configuration from the environment. A
// .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/ledger"
)

// MinSecretLength is the shortest accepted JWT signing secret, in bytes.
const MinSecretLength = 32

type Config struct {
	// HTTP server
	Port       string
	CORSOrigin string

	// gRPC health server
	HealthAddr     string
	HealthInterval time.Duration

	// Database
	DBPath string

	// Auth
	JWTSecret  string
	BcryptCost int

	// Budgets
	SpendPolicy string

	// Logging
	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads the configuration. Variables already set in the environment
// take precedence over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		HealthAddr:     getEnv("HEALTH_ADDR", ":50051"),
		HealthInterval: getEnvDuration("HEALTH_INTERVAL", 10*time.Second),

		DBPath: getEnv("DB_PATH", "./data/fintrack.db"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: getEnvInt("BCRYPT_COST", auth.DefaultBcryptCost),

		SpendPolicy: getEnv("BUDGET_SPEND_POLICY", string(ledger.PolicyReconcile)),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.HealthAddr == "" {
		errors = append(errors, "health address cannot be empty")
	}

	if c.HealthInterval < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid health interval %v: must be at least 100ms", c.HealthInterval))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < MinSecretLength {
		errors = append(errors, fmt.Sprintf("JWT_SECRET must be at least %d bytes", MinSecretLength))
	}

	// bcrypt.MinCost and bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("invalid bcrypt cost %d: must be between 4 and 31", c.BcryptCost))
	}

	if _, err := ledger.ParsePolicy(c.SpendPolicy); err != nil {
		errors = append(errors, err.Error())
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Policy returns the parsed budget spend policy. Call after Validate.
func (c *Config) Policy() ledger.Policy {
	p, _ := ledger.ParsePolicy(c.SpendPolicy)
	return p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
