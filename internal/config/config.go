package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bakeryhq/orderdesk/internal/repository"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Sheets    SheetsConfig
	Assistant AssistantConfig
	Access    AccessConfig
	CORS      CORSConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type StoreConfig struct {
	Driver   string // sqlite, postgres or memory
	Path     string // sqlite database file
	DSN      string // postgres connection string
	SeedFile string // optional YAML catalog used on first start
}

type SheetsConfig struct {
	WebhookURL  string // used until one is saved through the API
	SyncTimeout time.Duration
}

type AssistantConfig struct {
	APIKey string // assistant is disabled when empty
	Model  string
}

type AccessConfig struct {
	PIN       string
	JWTSecret string
	TokenTTL  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Store: storeFromEnv(),
		Sheets: SheetsConfig{
			WebhookURL:  getEnv("SHEETS_WEBHOOK_URL", ""),
			SyncTimeout: getEnvAsDuration("SYNC_TIMEOUT", 30*time.Second),
		},
		Assistant: AssistantConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Access: AccessConfig{
			PIN:       getEnv("ACCESS_PIN", "0300"),
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 12*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if err := c.Store.Validate(); err != nil {
		return err
	}

	if c.Sheets.SyncTimeout <= 0 {
		return fmt.Errorf("SYNC_TIMEOUT must be positive")
	}

	if !pinPattern.MatchString(c.Access.PIN) {
		return fmt.Errorf("ACCESS_PIN must be exactly 4 digits")
	}

	if c.Access.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// LoadStore reads only the store settings. Tools that never serve HTTP use
// it so unrelated server settings cannot stop them.
func LoadStore() (StoreConfig, error) {
	if err := loadDotEnv(); err != nil {
		return StoreConfig{}, err
	}
	return storeFromEnv(), nil
}

// Validate checks that the selected driver has what it needs
func (s StoreConfig) Validate() error {
	switch s.Driver {
	case repository.DriverSQLite:
		if s.Path == "" {
			return fmt.Errorf("STORE_PATH is required for the sqlite store")
		}
	case repository.DriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the postgres store")
		}
	case repository.DriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %s (must be sqlite, postgres, or memory)", s.Driver)
	}
	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Helper functions for reading environment variables

// loadDotEnv applies a .env file from the working directory when present
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	return nil
}

func storeFromEnv() StoreConfig {
	return StoreConfig{
		Driver:   getEnv("STORE_DRIVER", repository.DriverSQLite),
		Path:     getEnv("STORE_PATH", "orderdesk.db"),
		DSN:      getEnv("DATABASE_DSN", ""),
		SeedFile: getEnv("SEED_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
