package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the Cardapio server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Menu     MenuConfig
}

type ServerConfig struct {
	Port          int
	Env           string
	PublicBaseURL string
	RateLimit     int
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// AuthConfig configures verification of identity-provider session tokens.
// Exactly one of JWTSecret (HS256) or JWTPublicKey (RS256, PEM) is required.
type AuthConfig struct {
	JWTSecret    string
	JWTPublicKey string
	JWTIssuer    string
}

// StorageConfig points at an S3-compatible bucket with public read access.
// Uploads are disabled when Bucket is empty.
type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	MaxUploadBytes  int64
}

type MenuConfig struct {
	CacheTTL time.Duration
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          envInt("CARDAPIO_PORT", 8080),
			Env:           envString("CARDAPIO_ENV", "development"),
			PublicBaseURL: strings.TrimRight(envString("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
			RateLimit:     envInt("RATE_LIMIT_PER_MIN", 120),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
			JWTPublicKey: os.Getenv("AUTH_JWT_PUBLIC_KEY"),
			JWTIssuer:    os.Getenv("AUTH_JWT_ISSUER"),
		},
		Storage: StorageConfig{
			Endpoint:        os.Getenv("STORAGE_ENDPOINT"),
			Region:          envString("STORAGE_REGION", "us-east-1"),
			Bucket:          os.Getenv("STORAGE_BUCKET"),
			AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
			PublicURL:       strings.TrimRight(os.Getenv("STORAGE_PUBLIC_URL"), "/"),
			MaxUploadBytes:  int64(envInt("UPLOAD_MAX_BYTES", 10<<20)),
		},
		Menu: MenuConfig{
			CacheTTL: envDuration("PUBLIC_MENU_CACHE_TTL", time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UploadsEnabled reports whether an object store bucket is configured.
func (c StorageConfig) UploadsEnabled() bool {
	return c.Bucket != ""
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKey == "" {
		return fmt.Errorf("one of AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY is required")
	}
	if c.Auth.JWTSecret != "" && c.Auth.JWTPublicKey != "" {
		return fmt.Errorf("AUTH_JWT_SECRET and AUTH_JWT_PUBLIC_KEY are mutually exclusive")
	}

	if !isHTTPURL(c.Server.PublicBaseURL) {
		return fmt.Errorf("PUBLIC_BASE_URL must start with http:// or https://, got %q", c.Server.PublicBaseURL)
	}

	if c.Storage.UploadsEnabled() {
		if c.Storage.PublicURL == "" {
			return fmt.Errorf("STORAGE_PUBLIC_URL is required when STORAGE_BUCKET is set")
		}
		if !isHTTPURL(c.Storage.PublicURL) {
			return fmt.Errorf("STORAGE_PUBLIC_URL must start with http:// or https://, got %q", c.Storage.PublicURL)
		}
		if c.Storage.Endpoint != "" && !isHTTPURL(c.Storage.Endpoint) {
			return fmt.Errorf("STORAGE_ENDPOINT must start with http:// or https://, got %q", c.Storage.Endpoint)
		}
	}

	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}

	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
