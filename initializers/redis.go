package initializers

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectToRedis returns a client for REDIS_URL, or nil when no Redis is
// configured. Callers fall back to in-process implementations.
func ConnectToRedis() *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}

	return redis.NewClient(opts)
}
