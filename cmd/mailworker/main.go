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
	"storydesk/pkg/mailer"
	"storydesk/pkg/schedule"

	"github.com/joho/godotenv"
)

const (
	pollInterval = 5 * time.Second
	claimLimit   = 10
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	rdb, err := db.ConnectRedis(ctx)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer rdb.Close()

	articleRepo := repository.NewArticleRepository(conn)
	scheduler := schedule.NewScheduler(rdb, db.ScheduleKey, 1)

	sesMailer, err := mailer.NewSESMailer(ctx, os.Getenv("AWS_REGION"), os.Getenv("EMAIL_SENDER"))
	if err != nil {
		log.Fatalf("error creating SES mailer: %v", err)
	}

	w := &worker{
		scheduler:   scheduler,
		articles:    articleRepo,
		mailer:      sesMailer,
		frontendURL: os.Getenv("FRONTEND_URL"),
	}

	slog.Info("mail worker started", "poll_interval", pollInterval.String())

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("mail worker stopping")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}
