package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when TODO_API_URL is not set
const DefaultAPIURL = "http://localhost:8000"

// Session store backends
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

type Config struct {
	Env     string // dev or prod
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Mock    MockConfig
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration // 0 disables the timeout
}

type SessionConfig struct {
	Store       string // memory, file or redis
	FilePath    string
	Passphrase  string // encrypts the file store when set
	RedisPrefix string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MockConfig configures the local mock API server
type MockConfig struct {
	Port            string
	PasetoKey       []byte // empty means generate a random key at startup
	TokenDuration   time.Duration
	TrustedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("APP_ENV", "dev"),
		API: APIConfig{
			BaseURL:        strings.TrimRight(getEnv("TODO_API_URL", DefaultAPIURL), "/"),
			RequestTimeout: getDurationEnv("TODO_REQUEST_TIMEOUT", 0),
		},
		Session: SessionConfig{
			Store:       strings.ToLower(getEnv("SESSION_STORE", StoreFile)),
			FilePath:    getEnv("SESSION_FILE", defaultSessionFile()),
			Passphrase:  getEnv("SESSION_PASSPHRASE", ""),
			RedisPrefix: getEnv("SESSION_REDIS_PREFIX", "todo:session:"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Mock: MockConfig{
			Port:            getEnv("MOCK_API_PORT", "8000"),
			PasetoKey:       []byte(getEnv("MOCK_PASETO_KEY", "")),
			TokenDuration:   getDurationEnv("MOCK_TOKEN_DURATION", 30*time.Minute),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
			ReadTimeout:     getDurationEnv("MOCK_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("MOCK_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("MOCK_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
	}

	switch cfg.Session.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return nil, fmt.Errorf("SESSION_STORE must be one of memory, file, redis, got %q", cfg.Session.Store)
	}

	// PASETO v4.local keys are exactly 32 bytes
	if n := len(cfg.Mock.PasetoKey); n != 0 && n != 32 {
		return nil, fmt.Errorf("MOCK_PASETO_KEY must be exactly 32 bytes, got %d", n)
	}

	return cfg, nil
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true if the environment is set to dev
func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".todo", "session")
	}
	return filepath.Join(home, ".todo", "session")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getDurationEnv reads a whole number of seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Split by comma and trim whitespace
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
