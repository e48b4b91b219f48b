package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// MinAPIKeyLength is the shortest plain API key Load accepts.
const MinAPIKeyLength = 8

// Config holds application configuration loaded from environment.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Pagination PaginationConfig
	AWS        AWSConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL         string // if set, used as-is
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis settings. An empty Addr disables the activity tree cache.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	TreeCacheTTL int // seconds
}

// AuthConfig holds API credentials. Exactly one of APIKey or APIKeyHash is normally set;
// JWTSecret additionally enables bearer tokens.
type AuthConfig struct {
	APIKey         string
	APIKeyHash     string // bcrypt
	JWTSecret      string
	JWTExpireHours int
}

// PaginationConfig bounds list pages. Repositories clamp every page to MaxLimit.
type PaginationConfig struct {
	MaxLimit int
}

// AWSConfig holds credentials for reading seed datasets from S3.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3-compatible stores
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level string
	Debug bool
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// JWTEnabled reports whether bearer tokens are accepted.
func (c AuthConfig) JWTEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "directory"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvInt("DB_MAX_CONNS", 10),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			TreeCacheTTL: getEnvInt("TREE_CACHE_TTL_SEC", 300),
		},
		Auth: AuthConfig{
			APIKey:         strings.TrimSpace(os.Getenv("API_KEY")),
			APIKeyHash:     strings.TrimSpace(os.Getenv("API_KEY_HASH")),
			JWTSecret:      os.Getenv("JWT_SECRET"),
			JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),
		},
		Pagination: PaginationConfig{
			MaxLimit: getEnvInt("PAGINATION_MAX_LIMIT", 200),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("AWS_ENDPOINT", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Debug: getEnvBool("DEBUG", false),
		},
	}
	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c AuthConfig) validate() error {
	if c.APIKey == "" && c.APIKeyHash == "" {
		return errors.New("config: API_KEY or API_KEY_HASH must be set")
	}
	if c.APIKey != "" && len(c.APIKey) < MinAPIKeyLength {
		return fmt.Errorf("config: API_KEY must be at least %d characters", MinAPIKeyLength)
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
