// Package cache provides round-scoped advisory locking and lifecycle
// fan-out over Redis. Adapted from the teacher's internal/cache/redis.go:
// the crash-game's per-bet/per-balance keys become a per-round advisory
// lock and a single events channel broadcasting round lifecycle transitions
// to every subscribed replica, including the one that published them.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"go-sportsbook/internal/config"
)

const (
	roundLockPrefix = "sportsbook:lock:round:"
	eventsChannel   = "sportsbook:events"
	roundLockTTL    = 30 * time.Second
)

type Service interface {
	GetClient() *redis.Client
	Health() map[string]string
	Close() error

	// AcquireRoundLock takes the advisory lock for roundID, returning false
	// if another process already holds it. Used to serialize settle_round /
	// finalize_revenue across replicas without a database transaction.
	AcquireRoundLock(ctx context.Context, roundID uint64) (bool, error)
	ReleaseRoundLock(ctx context.Context, roundID uint64) error

	// PublishEvent fans a round lifecycle event out to every replica's hub.
	PublishEvent(ctx context.Context, payload []byte) error
	Subscribe(ctx context.Context) *redis.PubSub
}

type service struct {
	client *redis.Client
}

var (
	redisAddr     = config.Env("REDIS_URL", "localhost:6379")
	redisPassword = config.Env("REDIS_PASSWORD", "")
	redisDB       = config.EnvInt("REDIS_DB", 0)
	cacheInstance *service
)

func New() Service {
	if cacheInstance != nil {
		return cacheInstance
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("[CACHE] Redis connection failed: %v", err)
		log.Println("[CACHE] Running without Redis cache")
		return nil
	}

	log.Println("[CACHE] Redis connected successfully")

	cacheInstance = &service{
		client: client,
	}

	return cacheInstance
}

func (s *service) GetClient() *redis.Client {
	return s.client
}

func (s *service) AcquireRoundLock(ctx context.Context, roundID uint64) (bool, error) {
	key := fmt.Sprintf("%s%d", roundLockPrefix, roundID)
	return s.client.SetNX(ctx, key, "1", roundLockTTL).Result()
}

func (s *service) ReleaseRoundLock(ctx context.Context, roundID uint64) error {
	key := fmt.Sprintf("%s%d", roundLockPrefix, roundID)
	return s.client.Del(ctx, key).Err()
}

func (s *service) PublishEvent(ctx context.Context, payload []byte) error {
	return s.client.Publish(ctx, eventsChannel, payload).Err()
}

func (s *service) Subscribe(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, eventsChannel)
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	_, err := s.client.Ping(ctx).Result()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("redis down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "Redis is healthy"

	poolStats := s.client.PoolStats()
	stats["hits"] = fmt.Sprintf("%d", poolStats.Hits)
	stats["misses"] = fmt.Sprintf("%d", poolStats.Misses)
	stats["timeouts"] = fmt.Sprintf("%d", poolStats.Timeouts)
	stats["total_conns"] = fmt.Sprintf("%d", poolStats.TotalConns)
	stats["idle_conns"] = fmt.Sprintf("%d", poolStats.IdleConns)
	stats["stale_conns"] = fmt.Sprintf("%d", poolStats.StaleConns)

	return stats
}

func (s *service) Close() error {
	log.Println("[CACHE] Disconnecting from Redis")
	return s.client.Close()
}
