package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkharitonov/spacetrips/config"
	"github.com/mkharitonov/spacetrips/internal/bootstrap"
	"github.com/mkharitonov/spacetrips/internal/cache"
	"github.com/mkharitonov/spacetrips/internal/catalog"
	"github.com/mkharitonov/spacetrips/internal/kafka"
	"github.com/mkharitonov/spacetrips/internal/repository"
	"github.com/mkharitonov/spacetrips/internal/service/launches"
	"github.com/mkharitonov/spacetrips/internal/service/trips"
	"github.com/mkharitonov/spacetrips/internal/spacex"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	tripRepo := repository.NewTripRepository(pool)

	launchAPI := catalog.NewLaunchAPI(spacex.NewClient(cfg.Catalog.RequestsPerSecond, cfg.Catalog.MaxRetries))
	tripService := trips.NewTripService(tripRepo,
		trips.WithNotifications(producer, cfg.Kafka.NotificationsTopic))
	launchService := launches.NewLaunchService(launchAPI, tripService, redisCache)

	if err := bootstrap.Run(ctx, cfg, userRepo, launchService, tripService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
