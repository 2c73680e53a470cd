package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "forzeit-dev-secret-key-not-for-production"

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Data
	SeedPath string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret        string
	JWTIssuer        string
	JWTAudience      string
	TokenTTL         time.Duration
	EnableTestTokens bool

	// Insights cache
	InsightsTTL        time.Duration
	CacheSweepInterval time.Duration

	// HTTP
	CORSOrigins        []string
	RateLimitPerMinute int

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	env := getEnv("ENVIRONMENT", "development")
	production := env == "production"

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" && !production {
		jwtSecret = devJWTSecret
	}

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":4000"),
		Environment:   env,
		SeedPath:      getEnv("SEED_PATH", "data/seed.json"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		JWTSecret:        jwtSecret,
		JWTIssuer:        getEnv("JWT_ISSUER", "forzeit-api"),
		JWTAudience:      getEnv("JWT_AUDIENCE", "forzeit-clients"),
		TokenTTL:         getEnvDuration("TOKEN_TTL", 24*time.Hour),
		EnableTestTokens: getEnvBool("ENABLE_TEST_TOKENS", !production),

		InsightsTTL:        getEnvDuration("INSIGHTS_TTL", 60*time.Second),
		CacheSweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", 30*time.Second),

		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),

		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.JWTSecret == devJWTSecret {
			return fmt.Errorf("JWT_SECRET must not use the development default in production")
		}
	}
	if c.SeedPath == "" {
		return fmt.Errorf("SEED_PATH is required")
	}
	if c.InsightsTTL <= 0 {
		return fmt.Errorf("INSIGHTS_TTL must be positive")
	}
	if c.CacheSweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvList splits a comma separated variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
