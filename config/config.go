package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default_secret_CHANGE_ME"

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AppID         string
	JWTSecret     string
	AllowedOrigin string
	// Document store
	StoreDriver       string
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	NotifyChannel     string
	SubscriptionRetry time.Duration
	// Menu sessions
	MenuPageSize    int
	InboxSize       int
	SessionTTL      time.Duration
	PreferencesFile string
	CacheSchemaTTL  time.Duration
	// Rate limiting, per menu session or client IP
	RateLimitRPS       float64
	RateLimitBurst     int
	RateLimitClientTTL time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env is optional, system env vars win in containers
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	return cfg
}

// FromEnv reads the configuration from the process environment.
func FromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AppID:         getEnv("APP_ID", "union-live-menu"),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		StoreDriver:       getEnv("STORE_DRIVER", DriverMemory),
		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),
		NotifyChannel:     getEnv("NOTIFY_CHANNEL", "menu_documents"),
		SubscriptionRetry: getDurationEnv("SUBSCRIPTION_RETRY", 2*time.Second),

		MenuPageSize:    getIntEnv("MENU_PAGE_SIZE", 12),
		InboxSize:       getIntEnv("INBOX_SIZE", 64),
		SessionTTL:      getDurationEnv("SESSION_TTL", 12*time.Hour),
		PreferencesFile: getEnv("PREFERENCES_FILE", "data/preferences.gob"),
		CacheSchemaTTL:  getDurationEnv("CACHE_SCHEMA_TTL", time.Hour),

		RateLimitRPS:       getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 100),
		RateLimitClientTTL: getDurationEnv("RATE_LIMIT_CLIENT_TTL", 3*time.Minute),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),
	}
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DBUrl == "" {
			return errors.New("DB_DSN environment variable is required for the postgres store")
		}
	default:
		return errors.New("STORE_DRIVER must be memory or postgres")
	}
	if c.MenuPageSize < 1 {
		return errors.New("MENU_PAGE_SIZE must be at least 1")
	}
	if c.InboxSize < 1 {
		return errors.New("INBOX_SIZE must be at least 1")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	return nil
}

// PublisherEnabled reports whether object storage is configured.
func (c *Config) PublisherEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
