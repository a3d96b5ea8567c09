package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	PostgreSQL PostgreSQLConfig
	LLM        LLMConfig
	Geo        GeoConfig
	Chat       ChatConfig
	Auth       AuthConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// PostgreSQLConfig holds PostgreSQL database configuration.
// An empty DSN disables the conversation/settings stores; the chat core
// itself is stateless and keeps working without them.
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// LLMConfig holds the generative-text backend configuration
type LLMConfig struct {
	APIKey              string
	APIBase             string
	Model               string
	Temperature         float64
	MaxTokens           int
	Timeout             int    // seconds; bound on a single invocation
	WebContextExtraBody string // JSON merged into the request when web grounding is on
	Enabled             bool
}

// GeoConfig holds the commune directory lookup configuration
type GeoConfig struct {
	BaseURL string
	Timeout int // seconds
}

// ChatConfig holds conversation pipeline tuning
type ChatConfig struct {
	MaxTurns       int // history window for extraction and intent
	GroundingTurns int // shorter window for the web-grounding heuristic
}

// AuthConfig holds the authentication gate configuration.
// Tokens maps bearer token -> user id, parsed from a comma-separated list
// of user:token pairs. When empty the gate rejects nothing and every
// request runs as the anonymous user.
type AuthConfig struct {
	Tokens map[string]string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Namespace string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "immo_chat"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
			Enabled:            getEnv("DATABASE_URL", getEnv("PG_DSN", "")) != "" || getEnv("PG_PASSWORD", "") != "",
		},
		LLM: LLMConfig{
			APIKey:              getEnv("LLM_API_KEY", ""),
			APIBase:             getEnv("LLM_API_BASE", "https://api.mistral.ai/v1"),
			Model:               getEnv("LLM_MODEL", "mistral-large-latest"),
			Temperature:         getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			MaxTokens:           getEnvAsInt("LLM_MAX_TOKENS", 2048),
			Timeout:             getEnvAsInt("LLM_TIMEOUT", 90),
			WebContextExtraBody: getEnv("LLM_WEB_CONTEXT_EXTRA_BODY", `{"web_search":true}`),
			Enabled:             getEnv("LLM_API_KEY", "") != "",
		},
		Geo: GeoConfig{
			BaseURL: getEnv("GEO_API_BASE", "https://geo.api.gouv.fr"),
			Timeout: getEnvAsInt("GEO_TIMEOUT", 10),
		},
		Chat: ChatConfig{
			MaxTurns:       getEnvAsInt("CHAT_MAX_TURNS", 8),
			GroundingTurns: getEnvAsInt("CHAT_GROUNDING_TURNS", 6),
		},
		Auth: AuthConfig{
			Tokens: parseTokenPairs(getEnv("AUTH_TOKENS", "")),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Namespace: getEnv("METRICS_NAMESPACE", "immo_chat"),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// parseTokenPairs parses "alice:tok1,bob:tok2" into token -> user id
func parseTokenPairs(raw string) map[string]string {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			log.Printf("Warning: ignoring malformed AUTH_TOKENS entry %q", pair)
			continue
		}
		tokens[parts[1]] = parts[0]
	}
	return tokens
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
