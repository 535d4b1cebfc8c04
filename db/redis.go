package db

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

const (
	// ScheduleKey holds pending notification jobs, scored by fire time.
	ScheduleKey = "storydesk:schedule:emails"
	// NewsCacheKey holds the singleton category news document.
	NewsCacheKey = "storydesk:news:latest"
)

func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
