package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends selectable through STORE.
const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"
)

// DefaultCatalogBaseURL is the public Mercadona catalog API.
const DefaultCatalogBaseURL = "https://tienda.mercadona.es/api/"

// Config holds all configuration for the application
type Config struct {
	LogLevel       string
	LogFormat      string
	Port           string
	PrometheusPort string

	Store            string
	DatabaseURL      string
	DatabaseMaxConns int
	MigrationsPath   string

	FirebaseProjectID   string
	FirebaseAPIKey      string
	FirebaseCredentials string

	CatalogBaseURL         string
	CatalogTimeout         time.Duration
	CatalogRefreshInterval time.Duration
	ResolveConcurrency     int

	TelegramToken  string
	TelegramChatID int64
	RabbitMQURL    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "text"),
		PrometheusPort:      getEnvOrDefault("PROMETHEUS_PORT", "9090"),
		Port:                getEnvOrDefault("PORT", "8080"),
		Store:               getEnvOrDefault("STORE", StoreFirestore),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		MigrationsPath:      getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseAPIKey:      os.Getenv("FIREBASE_API_KEY"),
		FirebaseCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		CatalogBaseURL:      getEnvOrDefault("CATALOG_BASE_URL", DefaultCatalogBaseURL),
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
	}

	var err error
	if cfg.CatalogTimeout, err = getDurationOrDefault("CATALOG_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CatalogTimeout <= 0 {
		return nil, fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if cfg.CatalogRefreshInterval, err = getDurationOrDefault("CATALOG_REFRESH_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogRefreshInterval <= 0 {
		return nil, fmt.Errorf("CATALOG_REFRESH_INTERVAL must be positive")
	}
	if cfg.DatabaseMaxConns, err = getIntOrDefault("DATABASE_MAX_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.DatabaseMaxConns < 1 {
		return nil, fmt.Errorf("DATABASE_MAX_CONNS must be at least 1")
	}
	if cfg.ResolveConcurrency, err = getIntOrDefault("RESOLVE_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.ResolveConcurrency < 1 {
		return nil, fmt.Errorf("RESOLVE_CONCURRENCY must be at least 1")
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is required when TELEGRAM_TOKEN is set")
	}

	switch cfg.Store {
	case StoreFirestore:
		if cfg.FirebaseProjectID == "" {
			return nil, fmt.Errorf("FIREBASE_PROJECT_ID environment variable is required")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	// Sign-in always goes through Firebase Auth.
	if cfg.FirebaseProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID environment variable is required")
	}
	if cfg.FirebaseAPIKey == "" {
		return nil, fmt.Errorf("FIREBASE_API_KEY environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
