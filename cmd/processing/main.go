package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobradar/internal/cache"
	rediscache "jobradar/internal/cache/redis"
	"jobradar/internal/config"
	"jobradar/internal/database"
	"jobradar/internal/events"
	"jobradar/internal/notify"
	"jobradar/internal/processor"
	"jobradar/internal/store"
	"jobradar/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newNATSConnection(cfg *config.Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("processing-service"),
		nats.RetryOnFailedConnect(true),
	}
	return nats.Connect(cfg.NATSURL, opts...)
}

func newStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	db, err := database.New(context.Background(), database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}
	return store.NewClickHouse(db.Conn()), nil
}

func newCache(cfg *config.Config) cache.Cache {
	return rediscache.New(cache.Options{
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.CacheTTL,
	})
}

func newNotifier(cfg *config.Config, logger *zap.Logger) notify.Notifier {
	return notify.NewDiscord(cfg.DiscordWebhookURL, cfg.FeedTimeout, logger)
}

func newTracer() trace.Tracer {
	return telemetry.GetTracer("jobradar/processing")
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newStore,
			newCache,
			newNotifier,
			processor.NewJobProcessor,
			events.NewHandler,
			newTracer,
		),
		fx.Invoke(
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
