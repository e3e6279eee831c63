// Package main is the entry point of the ledger API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finances/internal/config"
	"finances/internal/repositories"
	"finances/internal/repositories/cache"
	"finances/internal/routes"
	"finances/internal/services/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
	}()

	// Periodic check of connection pool stats
	go func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			log.Printf("DB Stats: Open=%d, Idle=%d, InUse=%d, WaitCount=%d, WaitDuration=%s",
				stats.OpenConnections, stats.Idle, stats.InUse, stats.WaitCount, stats.WaitDuration)
		}
	}()

	var cacheService *cache.CacheService
	if cfg.Redis.Enabled() {
		cacheService = cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.Redis.TTL)
		if err := cacheService.HealthCheck(context.Background()); err != nil {
			log.Printf("⚠️ Redis unreachable, continuing with a cold cache: %v", err)
		} else if cfg.Redis.FlushOnStart {
			if err := cacheService.FlushAll(context.Background()); err != nil {
				log.Printf("⚠️ Failed to flush Redis cache: %v", err)
			} else {
				log.Println("✅ Redis cache flushed on startup")
			}
		}
		defer func() {
			if err := cacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}()
	} else {
		log.Println("REDIS_HOST not set, caching disabled")
	}

	var notifier notification.Notifier = notification.NewLogNotifier()
	if cfg.AMQP.URL != "" {
		publisher, err := notification.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			log.Printf("⚠️ AMQP unavailable, transfer events will only be logged: %v", err)
		} else {
			notifier = publisher
		}
	}
	defer notifier.Close()

	app := fiber.New(fiber.Config{AppName: "finances"})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-User-Login, X-User-Password",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/register", limiter.New(limiter.Config{
		Max:        cfg.HTTP.RateLimitMax,
		Expiration: cfg.HTTP.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		DB:         db,
		Cache:      cacheService,
		Notifier:   notifier,
		BcryptCost: cfg.BcryptCost,
	})

	go func() {
		if err := app.Listen(":" + cfg.HTTP.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("⚠️ Shutdown: %v", err)
	}
}
