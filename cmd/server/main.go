package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"kitapantaups.id/api/internal/bootstrap"
	"kitapantaups.id/api/internal/config"
	"kitapantaups.id/api/internal/server"
	"kitapantaups.id/api/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Config{
		Host:            cfg.DBHost,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		Name:            cfg.DBName,
		Port:            cfg.DBPort,
		SSLMode:         cfg.DBSSLMode,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		Debug:           cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedMasterData(db); err != nil {
		log.Fatalf("failed to seed master data: %v", err)
	}
	if cfg.IsDevelopment() {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv, err := server.NewServer(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("❌ server exited with error: %v", err)
		}
	case sig := <-quit:
		log.Printf("🛑 Received %s, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("❌ graceful shutdown failed: %v", err)
		}
	}
}

// connectRedis returns nil when REDIS_URL is unset or unreachable; redis-backed
// features then degrade to their in-process fallbacks.
func connectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("⚠️ REDIS_URL not set, running without redis")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("⚠️ invalid REDIS_URL, running without redis: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ redis unreachable, running without redis: %v", err)
		_ = client.Close()
		return nil
	}

	log.Println("✅ Connected to redis")
	return client
}
