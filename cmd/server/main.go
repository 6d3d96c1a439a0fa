package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"teamnexus.com/collegeportal/internal/bootstrap"
	"teamnexus.com/collegeportal/internal/config"
	"teamnexus.com/collegeportal/internal/server"
	"teamnexus.com/collegeportal/pkg/database"
	"teamnexus.com/collegeportal/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect(cfg.DatabaseURL)
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedAdminUser(db, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	fileStorage, err := newFileStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize file storage: %v", err)
	}

	redisClient := connectRedis(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, db, redisClient, fileStorage)
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func newFileStorage(cfg *config.Config) (storage.FileStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		log.Println("Using cloudinary file storage")
		return storage.NewCloudinaryStorage(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryUploadFolder,
		)
	}
	log.Printf("Using local file storage in %s", cfg.UploadDir)
	return storage.NewLocalStorage(cfg.UploadDir)
}

// connectRedis returns nil when REDIS_URL is unset or unreachable.
func connectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("REDIS_URL not set, posting cooldowns disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("❌ Invalid REDIS_URL: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis unreachable, posting cooldowns disabled: %v", err)
		client.Close()
		return nil
	}

	log.Println("✅ Connected to Redis")
	return client
}
