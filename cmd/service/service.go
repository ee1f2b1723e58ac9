package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	configs "peerreview_service/config"
	"peerreview_service/internal/artifact"
	"peerreview_service/internal/llm"
	"peerreview_service/internal/repository"
	"peerreview_service/internal/server/httpapi"
	"peerreview_service/internal/service"
	"peerreview_service/pkg/cache"
	"peerreview_service/pkg/db"
	"peerreview_service/pkg/kafka"
	"peerreview_service/pkg/logger"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := db.NewPostgres(db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	submissionRepo := repository.NewSubmissionRepository(pg.DB())
	feedbackRepo := repository.NewFeedbackRepository(pg.DB())
	reviewRepo := repository.NewReviewRepository(pg.DB())

	artifacts, err := artifact.NewStore(ctx, artifact.Config{
		Endpoint:        cfg.S3.Endpoint,
		Region:          cfg.S3.Region,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Bucket:          cfg.S3.Bucket,
	})
	if err != nil {
		log.Fatalf("Failed to create artifact store: %v", err)
	}

	completionClient, err := llm.NewClient(llm.ClientConfig{
		APIKey:           cfg.LLM.APIKey,
		BaseURL:          cfg.LLM.BaseURL,
		Model:            cfg.LLM.Model,
		TopP:             cfg.LLM.TopP,
		FrequencyPenalty: cfg.LLM.FrequencyPenalty,
		Timeout:          cfg.LLM.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to create completion client: %v", err)
	}
	pipeline := llm.NewPipeline(completionClient, cfg.LLM.MaxAttempts, log)

	kafkaProducer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer kafkaProducer.Close()

	redisCache := cache.NewRedisCache(cfg.Redis.Address)
	defer redisCache.Close()

	submissionService := service.NewSubmissionService(
		submissionRepo,
		feedbackRepo,
		artifacts,
		pipeline,
		redisCache,
		kafkaProducer,
		log,
	)
	reviewService := service.NewReviewService(reviewRepo, kafkaProducer, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, redisCache, log)

	handler := httpapi.NewHandler(submissionService, reviewService, feedbackService, log)

	r := chi.NewRouter()
	r.Use(httpapi.NewLoggingMiddleware(log))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 10<<20) // 10 MB
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: r,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server stopped")
}
