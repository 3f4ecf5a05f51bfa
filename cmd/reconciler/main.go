package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Fluxpuck/sero-backend/internal/bus"
	"github.com/Fluxpuck/sero-backend/internal/roles"
)

// The reconciler runs out of process from the API server. It consumes
// level-change notifications and converges chat-platform role
// membership to match. Notifications carry complete snapshots, so
// duplicates and reordering are harmless.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	apiBase := os.Getenv("PLATFORM_API_BASE")
	botToken := os.Getenv("PLATFORM_BOT_TOKEN")
	if apiBase == "" || botToken == "" {
		log.Fatal("PLATFORM_API_BASE and PLATFORM_BOT_TOKEN are required")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer redisClient.Close()

	eventBus := bus.NewBusWithClient(redisClient)
	if err := eventBus.Ping(context.Background()); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	reconciler := roles.NewReconciler(roles.NewRESTClient(apiBase, botToken))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub := eventBus.Subscribe(ctx, bus.ChannelLevelUp)
	defer sub.Close()

	log.Printf("Reconciler listening on channel %q", bus.ChannelLevelUp)

	for {
		select {
		case <-ctx.Done():
			log.Println("Reconciler shutting down")
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				log.Println("Subscription closed")
				return
			}
			var payload bus.LevelUpPayload
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Printf("Malformed payload on %s: %v", msg.Channel, err)
				continue
			}
			failures := reconciler.Apply(ctx, payload)
			if len(failures) > 0 {
				log.Printf("Reconciled guild %s user %s with %d failures", payload.GuildID, payload.UserID, len(failures))
			}
		}
	}
}
