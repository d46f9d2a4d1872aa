package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StorageBackend string

const (
	StorageMemory    StorageBackend = "memory"
	StorageSQLite    StorageBackend = "sqlite"
	StorageFirestore StorageBackend = "firestore"
)

type LLMProvider string

const (
	LLMAnthropic LLMProvider = "anthropic"
	LLMVertex    LLMProvider = "vertex"
	LLMMock      LLMProvider = "mock"
	LLMNone      LLMProvider = "none"
)

type Config struct {
	Port     string
	LogLevel string
	Location *time.Location

	StorageBackend StorageBackend
	SQLitePath     string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	LLMProvider     LLMProvider
	AnthropicAPIKey string
	AnthropicModel  string
	AITimeout       time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load reads .env (when present) and then the environment.
func Load() (*Config, error) {
	// a missing .env is normal outside local dev
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	tzName := getEnv("FARUM_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("FARUM_TIMEZONE %q: %w", tzName, err)
	}

	timeout, err := getDurationEnv("FARUM_AI_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     getEnv("FARUM_PORT", getEnv("PORT", "8080")),
		LogLevel: getEnv("FARUM_LOG_LEVEL", "info"),
		Location: loc,

		StorageBackend: StorageBackend(strings.ToLower(getEnv("FARUM_STORAGE_BACKEND", string(StorageMemory)))),
		SQLitePath:     getEnv("FARUM_SQLITE_PATH", "data/breath.db"),

		GCPProjectID: getEnv("FARUM_GCP_PROJECT", ""),
		GCPLocation:  getEnv("FARUM_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("FARUM_MODEL_NAME", "gemini-2.5-flash-lite"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnv("FARUM_ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		AITimeout:       timeout,
	}

	provider := strings.ToLower(os.Getenv("FARUM_LLM_PROVIDER"))
	if provider == "" {
		// default to the real model only when a key is there
		provider = string(LLMNone)
		if cfg.AnthropicAPIKey != "" {
			provider = string(LLMAnthropic)
		}
	}
	cfg.LLMProvider = LLMProvider(provider)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageSQLite:
	case StorageFirestore:
		if c.GCPProjectID == "" {
			return errors.New("FARUM_GCP_PROJECT must be set for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown FARUM_STORAGE_BACKEND %q", c.StorageBackend)
	}

	switch c.LLMProvider {
	case LLMAnthropic, LLMMock, LLMNone:
	case LLMVertex:
		if c.GCPProjectID == "" {
			return errors.New("FARUM_GCP_PROJECT must be set for the vertex provider")
		}
	default:
		return fmt.Errorf("unknown FARUM_LLM_PROVIDER %q", c.LLMProvider)
	}
	return nil
}
