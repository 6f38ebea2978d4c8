package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	BaseURL        string
	AllowedOrigins []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret        string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	UploadDir      string
	MaxUploadBytes int64
	MaxPhotoBytes  int64

	OrphanSweepSchedule string
	OrphanGracePeriod   time.Duration

	LoginRateLimit string
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	port := getEnv("PORT", "3000")

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           port,
		BaseURL:        strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASS"),
		DBName:     getEnv("DB_NAME", "kitapantaups"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),

		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		OrphanSweepSchedule: getEnv("ORPHAN_SWEEP_SCHEDULE", "@every 12h"),
		LoginRateLimit:      getEnv("LOGIN_RATE_LIMIT", "10-M"),
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET are required")
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-access-secret"
		}
		if cfg.JWTRefreshSecret == "" {
			cfg.JWTRefreshSecret = "dev-refresh-secret"
		}
	}

	var err error
	if cfg.JWTAccessTTL, err = time.ParseDuration(getEnv("JWT_ACCESS_TTL", "15m")); err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	if cfg.JWTRefreshTTL, err = time.ParseDuration(getEnv("JWT_REFRESH_TTL", "168h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TTL: %w", err)
	}
	if cfg.OrphanGracePeriod, err = time.ParseDuration(getEnv("ORPHAN_GRACE_PERIOD", "24h")); err != nil {
		return nil, fmt.Errorf("invalid ORPHAN_GRACE_PERIOD: %w", err)
	}

	if cfg.MaxUploadBytes, err = parseMegabytes(getEnv("MAX_UPLOAD_MB", "10")); err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}
	if cfg.MaxPhotoBytes, err = parseMegabytes(getEnv("MAX_PHOTO_MB", "2")); err != nil {
		return nil, fmt.Errorf("invalid MAX_PHOTO_MB: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func parseMegabytes(s string) (int64, error) {
	mb, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if mb <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", mb)
	}
	return mb << 20, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
