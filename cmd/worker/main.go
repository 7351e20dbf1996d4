package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkharitonov/spacetrips/config"
	"github.com/mkharitonov/spacetrips/internal/cache"
	"github.com/mkharitonov/spacetrips/internal/catalog"
	"github.com/mkharitonov/spacetrips/internal/email"
	"github.com/mkharitonov/spacetrips/internal/kafka"
	"github.com/mkharitonov/spacetrips/internal/spacex"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker sends trip confirmation emails off the notifications topic and
// keeps the launch cache warm so page requests rarely wait on the upstream
// catalog.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisCache := cache.NewRedisCache(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)

	launchAPI := catalog.NewLaunchAPI(spacex.NewClient(cfg.Catalog.RequestsPerSecond, cfg.Catalog.MaxRetries))

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.TripEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	warmTicker := time.NewTicker(time.Duration(cfg.Worker.CacheWarmMinutes) * time.Minute)
	defer warmTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-warmTicker.C:
			launches := launchAPI.FetchAll(ctx)
			if len(launches) == 0 {
				log.Printf("cache warm skipped: catalog returned no launches")
				continue
			}
			if err := redisCache.SetLaunches(ctx, launches); err != nil {
				log.Printf("cache warm error: %v", err)
				continue
			}
			log.Printf("cache warmed with %d launches", len(launches))
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
