package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	AdminPassword string

	StorageDriver string
	UploadDir     string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	RateLimitPost    time.Duration
	RateLimitComment time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "static"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "college_portal"),
	}

	minutes, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %q", os.Getenv("JWT_TTL_MINUTES"))
	}
	cfg.JWTTTL = time.Duration(minutes) * time.Minute

	cfg.RateLimitPost, err = time.ParseDuration(getEnv("RATE_LIMIT_POST", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_POST: %w", err)
	}
	cfg.RateLimitComment, err = time.ParseDuration(getEnv("RATE_LIMIT_COMMENT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_COMMENT: %w", err)
	}

	switch cfg.StorageDriver {
	case "local", "cloudinary":
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
