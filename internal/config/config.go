package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// Every field is populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Email   EmailConfig
	Storage StorageConfig
	MinIO   MinIOConfig
	Access  AccessConfig
	Worker  WorkerConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	// MaxUploadMB caps a single multipart request body.
	MaxUploadMB int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// EmailConfig configures the SMTP relay used by background jobs.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
	FromName     string
	// AdminEmail receives the daily pending-submission digest.
	AdminEmail string
}

// =====================================================
// STORAGE CONFIGURATION
// =====================================================

const (
	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

type StorageConfig struct {
	Driver    string // local, minio
	LocalRoot string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // vocalhub
	UseSSL    bool   // false for local
}

// AccessConfig groups the community access rules.
type AccessConfig struct {
	RegistrationCode string
	PublicCacheTTL   time.Duration
}

type WorkerConfig struct {
	Concurrency    int
	DigestCronSpec string
	ShutdownWait   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "VocalHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			MaxUploadMB: getEnvInt("APP_MAX_UPLOAD_MB", 512),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60*24*7), // one week
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "localhost"),
			SMTPPort:     getEnvInt("SMTP_PORT", 1025),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			From:         getEnv("EMAIL_FROM", "noreply@vocalhub.local"),
			FromName:     getEnv("EMAIL_FROM_NAME", "VocalHub"),
			AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
			LocalRoot: getEnv("STORAGE_LOCAL_ROOT", "data"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "vocalhub"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Access: AccessConfig{
			RegistrationCode: getEnv("REGISTRATION_CODE", "114514"),
			PublicCacheTTL:   getEnvDuration("PUBLIC_CACHE_TTL", 2*time.Minute),
		},
		Worker: WorkerConfig{
			Concurrency:    getEnvInt("WORKER_CONCURRENCY", 10),
			DigestCronSpec: getEnv("DIGEST_CRON", "0 9 * * *"),
			ShutdownWait:   getEnvDuration("WORKER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverLocal:
		if c.Storage.LocalRoot == "" {
			return fmt.Errorf("STORAGE_LOCAL_ROOT must be set for the local driver")
		}
	case StorageDriverMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET must be set for the minio driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Access.RegistrationCode == "" {
		return fmt.Errorf("REGISTRATION_CODE must not be empty")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Email.AdminEmail == "" {
			fmt.Println("WARNING: ADMIN_EMAIL not set - pending digest will only be logged")
		}
	}

	return nil
}

// IsDevelopment reports whether the app runs with the development profile.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
