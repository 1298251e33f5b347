package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobradar/internal/cache"
	rediscache "jobradar/internal/cache/redis"
	"jobradar/internal/careers"
	"jobradar/internal/config"
	"jobradar/internal/feed"
	"jobradar/internal/filter"
	"jobradar/internal/messaging"
	"jobradar/internal/scheduler"
	"jobradar/internal/telemetry"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting ingestion service",
		zap.String("feed_url", cfg.FeedURL),
		zap.Int("careers_pages", len(cfg.CareersPages)),
		zap.Duration("polling_interval", cfg.PollingInterval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := telemetry.InitTracer(ctx, "jobradar-ingestion", cfg.OTLPCollectorURL, logger)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	} else {
		defer shutdownTracer()
	}

	jobCache := rediscache.New(cache.Options{
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.CacheTTL,
	})
	defer jobCache.Close()

	feedClient := feed.NewClient(logger, cfg, jobCache)
	scraper := careers.NewScraper(logger, cfg.CareersTimeout)
	jobFilter := filter.New(cfg.RecencyHorizon)

	publisher, err := messaging.NewPublisher(logger, cfg)
	if err != nil {
		logger.Fatal("failed to create NATS publisher", zap.Error(err))
	}
	defer publisher.Close()

	sched := scheduler.New(feedClient, scraper, jobFilter, publisher, logger, cfg)

	go func() {
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler failed", zap.Error(err))
		}
	}()

	logger.Info("ingestion service started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	sched.Stop()
	cancel()
	logger.Info("shutdown complete")
}
