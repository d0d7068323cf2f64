// Package config centralises configuration parsing for the SmartFit API.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config captures runtime configuration values for the API process.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	DBTimeout     time.Duration
	DBFailFast    bool // Exit when the startup ping fails instead of serving degraded.

	TokenSecret string
	TokenTTL    time.Duration

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	CORSOrigins []string
	LogLevel    string
	GinMode     string
}

const defaultDBHost = "cluster0.cn4mz.mongodb.net"

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables.")
	}
}

// Load reads environment variables into Config, applying defaults for local dev.
func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "Smartfit"),
		DBTimeout:     getDurationEnv("DB_TIMEOUT", 10*time.Second),
		DBFailFast:    getBoolEnv("DB_FAIL_FAST", false),
		TokenSecret:   getEnv("ACCESS_TOKEN_SECRET", ""),
		TokenTTL:      getDurationEnv("TOKEN_TTL", time.Hour),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		CORSOrigins:   splitAndTrim(getEnv("CORS_ORIGINS", "*")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		GinMode:       getEnv("GIN_MODE", "release"),
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = atlasURI(os.Getenv("DB_USER"), os.Getenv("DB_PASS"), getEnv("DB_HOST", defaultDBHost))
	}
	return cfg
}

// Validate reports configuration that makes the process unable to serve at all.
func (c Config) Validate() error {
	var errs []error
	if c.TokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is not set"))
	}
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is empty and DB_USER/DB_PASS are not set"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	return errors.Join(errs...)
}

// AllowAllOrigins reports whether CORS should accept any origin.
func (c Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.CORSOrigins) == 0
}

// ConsoleLogs reports whether logs should be human-readable instead of JSON.
func (c Config) ConsoleLogs() bool {
	return strings.EqualFold(c.LogLevel, "debug") || c.GinMode == "debug"
}

// atlasURI assembles the Atlas SRV connection string used by the hosted cluster.
func atlasURI(user, pass, host string) string {
	if user == "" || pass == "" {
		return ""
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=Cluster0",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
