package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mkharitonov/spacetrips/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the normalized launch list so that every page request
// does not hit the upstream catalog. It is strictly an optimization: callers
// fall through to the catalog on a miss or any redis error.
type RedisCache struct {
	client      *redis.Client
	launchesTTL time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisCache(cfg Config, launchesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		launchesTTL: launchesTTL,
	}
}

func (c *RedisCache) GetLaunches(ctx context.Context) ([]domain.Launch, error) {
	data, err := c.client.Get(ctx, launchesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var launches []domain.Launch
	if err := json.Unmarshal(data, &launches); err != nil {
		return nil, err
	}
	return launches, nil
}

func (c *RedisCache) SetLaunches(ctx context.Context, launches []domain.Launch) error {
	payload, err := json.Marshal(launches)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, launchesKey(), payload, c.launchesTTL).Err()
}

func launchesKey() string {
	return "cache:launches"
}
