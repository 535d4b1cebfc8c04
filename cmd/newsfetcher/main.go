package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storydesk/db"
	"storydesk/internal/repository"
	"storydesk/pkg/news"

	"github.com/joho/godotenv"
)

const refreshInterval = 12 * time.Hour

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := db.ConnectRedis(ctx)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer rdb.Close()

	apiKey := os.Getenv("BING_API_KEY")
	if apiKey == "" {
		slog.Error("BING_API_KEY is not configured")
		return
	}

	client := news.NewBingClient(apiKey)
	repo := repository.NewNewsRepository(rdb, db.NewsCacheKey)

	refresh(ctx, client, repo)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("news fetcher stopping")
			return
		case <-ticker.C:
			refresh(ctx, client, repo)
		}
	}
}

func refresh(ctx context.Context, client news.Fetcher, repo *repository.NewsRepository) {
	articles, err := client.FetchAll()
	if err != nil {
		slog.Error("error fetching news", "error", err)
		return
	}

	doc := &news.Document{
		Categories:  articles,
		LastUpdated: time.Now(),
	}

	if err := repo.Save(ctx, doc); err != nil {
		slog.Error("error saving news cache", "error", err)
		return
	}

	total := 0
	for _, list := range articles {
		total += len(list)
	}

	slog.Info("news cache refreshed", "categories", len(articles), "articles", total)
}
