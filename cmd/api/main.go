package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"storydesk/db"
	"storydesk/internal/handler"
	"storydesk/internal/process"
	"storydesk/internal/repository"
	"storydesk/pkg/llm"
	"storydesk/pkg/news"
	"storydesk/pkg/payment"
	"storydesk/pkg/schedule"
	"storydesk/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func newGenerator() llm.Generator {
	if os.Getenv("LLM_PROVIDER") == "anthropic" {
		return llm.NewAnthropicClient(os.Getenv("ANTHROPIC_API_KEY"))
	}
	return llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
}

func delayDivisor() int64 {
	raw := os.Getenv("SCHEDULE_COMPRESS")
	if raw == "" {
		return 1
	}
	divisor, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || divisor < 1 {
		slog.Warn("invalid SCHEDULE_COMPRESS, using real delays", "value", raw)
		return 1
	}
	return divisor
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()

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

	submissionRepo := repository.NewSubmissionRepository(conn)
	articleRepo := repository.NewArticleRepository(conn)
	newsRepo := repository.NewNewsRepository(rdb, db.NewsCacheKey)

	gateway := payment.NewStripeGateway(payment.Config{
		SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PriceIDs: map[string]string{
			"basic":     os.Getenv("STRIPE_PRICE_BASIC"),
			"published": os.Getenv("STRIPE_PRICE_PUBLISHED"),
			"premium":   os.Getenv("STRIPE_PRICE_PREMIUM"),
		},
		SuccessURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
		CancelURL:  os.Getenv("CHECKOUT_CANCEL_URL"),
	})

	scheduler := schedule.NewScheduler(rdb, db.ScheduleKey, delayDivisor())

	processor := process.NewProcessor(
		submissionRepo,
		articleRepo,
		newGenerator(),
		scheduler,
		os.Getenv("ARTICLE_AUTHOR"),
	)

	s3Store, err := storage.NewS3Store(ctx, os.Getenv("AWS_REGION"), os.Getenv("S3_BUCKET"))
	if err != nil {
		log.Fatalf("error creating S3 store: %v", err)
	}

	bingClient := news.NewBingClient(os.Getenv("BING_API_KEY"))

	submissionHandler := handler.NewSubmissionHandler(submissionRepo)
	checkoutHandler := handler.NewCheckoutHandler(gateway)
	webhookHandler := handler.NewWebhookHandler(gateway, processor)
	articleHandler := handler.NewArticleHandler(articleRepo, processor)
	revisionHandler := handler.NewRevisionHandler(articleRepo, processor)
	uploadHandler := handler.NewUploadHandler(s3Store, articleRepo)
	newsHandler := handler.NewNewsHandler(bingClient, newsRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Stripe-Signature"},
	}))

	r.POST("/submission", submissionHandler.CreateSubmission)
	r.GET("/submission/:submissionId/status", articleHandler.GetStatus)
	r.POST("/checkout", checkoutHandler.CreateCheckout)
	r.POST("/webhook/checkout", webhookHandler.HandleCheckoutEvent)
	r.GET("/article/:slug", articleHandler.GetArticle)
	r.POST("/article/publish", articleHandler.Publish)
	r.POST("/article/:slug/image", uploadHandler.UploadImage)
	r.POST("/revision/:slug", revisionHandler.SubmitRevision)
	r.GET("/revision/:slug", revisionHandler.GetRevision)
	r.GET("/news/latest", newsHandler.GetLatest)
	r.POST("/news/refresh", newsHandler.Refresh)
	r.GET("/health", handler.Health)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	err = r.Run(addr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
