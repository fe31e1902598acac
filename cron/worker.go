package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"mightymoves/config"
	"mightymoves/services/notification"
	"mightymoves/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// QueueRedisOpt is the asynq connection shared by the worker and the enqueuing client.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotificationWorker runs the booking notification worker in background.
// The returned server must be shut down by the caller.
func InitNotificationWorker(ctx context.Context, feed notification.Feed) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingCreated, HandleBookingCreated(feed))

	go monitorRedisConnection(ctx)

	go func() {
		log.Println("[NotificationWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Println("[NotificationWorker] Max retry attempts reached; notifications stay queued.")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

// HandleBookingCreated moves a queued booking into the admin feed.
func HandleBookingCreated(feed notification.Feed) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		b, err := tasks.ParseBookingCreatedTask(task)
		if err != nil {
			log.Printf("[NotificationHandler] Invalid payload: %v", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := feed.Publish(ctx, notification.NewBookingNotification(b, time.Now())); err != nil {
			log.Printf("[NotificationHandler] Failed to publish notification for booking %s: %v", b.ID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				log.Printf("[NotificationWorker] Redis connection lost: %v", err)
			}
		}
	}
}
