package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobradar/internal/api"
	"jobradar/internal/board"
	"jobradar/internal/config"
	"jobradar/internal/database"
	"jobradar/internal/store"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
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

func run(renderer *board.Renderer, server *api.Server, logger *zap.Logger, lc fx.Lifecycle) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := renderer.Run(ctx); err != nil && err != context.Canceled {
					logger.Error("renderer stopped", zap.Error(err))
				}
			}()
			go func() {
				if err := server.Start(); err != nil {
					logger.Error("API server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			return server.Shutdown(stopCtx)
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newStore,
			board.NewRenderer,
			api.NewServer,
		),
		fx.Invoke(run),
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
