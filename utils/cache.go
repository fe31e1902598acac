// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mightymoves/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient backs the per-client token and preference store and the admin feed.
	SessionClient *redis.Client
	// FormClient backs booking draft state.
	FormClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetSessionClient returns the redis client used for client sessions.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		SessionClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session")
	}
	return SessionClient
}

// GetFormClient returns the redis client used for booking drafts.
func GetFormClient() *redis.Client {
	if FormClient == nil {
		FormClient = newRedisClient(config.AppConfig.RedisFormDB, "Form")
	}
	return FormClient
}
