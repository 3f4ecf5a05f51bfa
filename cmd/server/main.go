package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Fluxpuck/sero-backend/internal/bus"
	"github.com/Fluxpuck/sero-backend/internal/cache"
	"github.com/Fluxpuck/sero-backend/internal/handlers"
	"github.com/Fluxpuck/sero-backend/internal/middleware"
	"github.com/Fluxpuck/sero-backend/internal/progression"
	"github.com/Fluxpuck/sero-backend/internal/repository"
	"github.com/Fluxpuck/sero-backend/internal/service"
	"github.com/Fluxpuck/sero-backend/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Sero Backend",
		// Badge uploads are capped at 1MB; leave headroom.
		BodyLimit: 2 * 1024 * 1024,
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Redis client is shared by the cache and the event bus; the
	// bootstrap owns its lifecycle.
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsed
		}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	defer redisClient.Close()

	var redisCache *cache.RedisCache
	eventBus := bus.NewBusWithClient(redisClient)
	if err := eventBus.Ping(context.Background()); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache; level-up events will not be delivered.", err)
	} else {
		redisCache = cache.NewRedisCache(redisClient)
		log.Println("Redis connected successfully")
	}

	levelCache := cache.NewLevelCache(redisCache)

	// Initialize repositories
	levelRepo := repository.NewUserLevelRepository(db)
	boostRepo := repository.NewBoostRepository(db)
	rankRepo := repository.NewRankRepository(db)
	curveRepo := repository.NewCurveRepository(db)
	guildRepo := repository.NewGuildRepository(db)

	// Initialize S3/MinIO storage (best-effort; badge endpoints return 503 if missing)
	var s3Store *storage.S3Storage
	if cfg, err := storage.LoadS3ConfigFromEnv(); err != nil {
		log.Printf("WARNING: S3 storage not configured: %v", err)
	} else if st, err := storage.NewS3Storage(cfg); err != nil {
		log.Printf("WARNING: Failed to initialize S3 storage: %v", err)
	} else {
		s3Store = st
		log.Printf("S3 storage initialized successfully (bucket=%s)", cfg.Bucket)
	}

	// Initialize services
	levelService := service.NewLevelService(levelRepo, boostRepo, rankRepo, curveRepo, eventBus, progression.NewRoller(), levelCache)
	boostService := service.NewBoostService(boostRepo)
	rankService := service.NewRankService(rankRepo, s3Store)
	guildService := service.NewGuildService(guildRepo)

	// Initialize handlers
	levelHandler := handlers.NewLevelHandler(levelService, guildService)
	boostHandler := handlers.NewBoostHandler(boostService)
	rankHandler := handlers.NewRankHandler(rankService)
	guildHandler := handlers.NewGuildHandler(guildService)
	mediaHandler := handlers.NewMediaHandler(s3Store)
	feedHandler := handlers.NewFeedHandler()

	// Pump level-up events from the bus into the live feed.
	go pumpFeed(eventBus, feedHandler)

	// Protected API
	api := app.Group("/api", middleware.AuthRequired(), limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	api.Get("/guilds/:guildId", guildHandler.GetGuild)
	api.Put("/guilds/:guildId/premium", guildHandler.SetPremium)

	api.Post("/guilds/:guildId/members/:userId/levels/gain", levelHandler.Gain)
	api.Post("/guilds/:guildId/members/:userId/levels/claim", levelHandler.Claim)
	api.Patch("/guilds/:guildId/members/:userId/levels", levelHandler.Add)
	api.Post("/guilds/:guildId/members/:userId/levels/reset", levelHandler.Reset)
	api.Get("/guilds/:guildId/members/:userId/levels", levelHandler.Get)
	api.Post("/guilds/:guildId/levels/reset", levelHandler.ResetGuild)

	api.Put("/guilds/:guildId/boosts", boostHandler.SetBoost)
	api.Get("/guilds/:guildId/members/:userId/boosts/effective", boostHandler.GetEffective)

	api.Put("/guilds/:guildId/ranks/:level", rankHandler.SetRank)
	api.Delete("/guilds/:guildId/ranks/:level", rankHandler.RemoveRank)
	api.Get("/guilds/:guildId/ranks", rankHandler.ListRanks)
	api.Post("/guilds/:guildId/ranks/:level/badge", rankHandler.UploadBadge)
	api.Get("/media/badges/*", mediaHandler.GetBadge)

	// WebSocket feed (websocket upgrade needs special handling)
	app.Use(
		"/ws/feed",
		middleware.AuthRequired(),
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws/feed", websocket.New(feedHandler.HandleFeed))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Sero backend is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// pumpFeed forwards level-up payloads from the bus to connected feed
// subscribers. Payloads are opaque here; the hub routes on guild.
func pumpFeed(eventBus *bus.Bus, feedHandler *handlers.FeedHandler) {
	sub := eventBus.Subscribe(context.Background(), bus.ChannelLevelUp)
	defer sub.Close()

	for msg := range sub.Channel() {
		var payload bus.LevelUpPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Feed received malformed payload: %v", err)
			continue
		}
		feedHandler.GetHub().Broadcast(payload.GuildID, []byte(msg.Payload))
	}
}
