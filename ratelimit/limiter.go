package ratelimit

import (
	"barhop/config"
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default is the process-wide limiter used by controllers.
var Default Store

// Init wires the default limiter from configuration: Redis-backed when
// REDIS_URL is set, otherwise an in-memory fixed window.
func Init() {
	limit := config.AppConfig.RateLimitPerHour

	if config.AppConfig.RedisURL != "" {
		opts, err := redis.ParseURL(config.AppConfig.RedisURL)
		if err != nil {
			log.Printf("Invalid REDIS_URL (%v), falling back to in-memory rate limiter", err)
			Default = NewMemoryStore(limit, time.Hour)
			return
		}
		Default = NewRedisStore(redis.NewClient(opts), limit, time.Hour)
		log.Println("Rate limiter using Redis store")
		return
	}

	Default = NewMemoryStore(limit, time.Hour)
	log.Println("Rate limiter using in-memory store")
}

// Check runs the key against the default limiter. Store errors fail open:
// quota is best-effort and must never take user-facing paths down with it.
func Check(key string) Result {
	if Default == nil {
		return Result{Success: true, Reset: time.Now().Add(time.Hour)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := Default.Check(ctx, key)
	if err != nil {
		log.Printf("Rate limit store error for key %s: %v", key, err)
		return Result{Success: true, Reset: time.Now().Add(time.Hour)}
	}
	return res
}
