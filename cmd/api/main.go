package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/config"
	mongostore "github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/db/mongo"
	redisstore "github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/db/redis"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/queue"
	"github.com/shopmanagementsystempk/Shop-Management-System/pkg/logger"
)

// @title        Shop Management System API
// @version      1.0
// @description  Multi-tenant shop billing backend.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting shop management api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap")
	}

	// Async audit pipeline; stops with the signal context.
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongostore.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, draining server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("stopped")
}

// ensureIndexes bootstraps every collection's indexes before the server takes
// traffic, so unique constraints hold from the first request.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []func(context.Context) error{
		mongostore.NewCredentialStore(db).EnsureIndexes,
		mongostore.NewShopRepository(db).EnsureIndexes,
		mongostore.NewAdminRepository(db).EnsureIndexes,
		mongostore.NewStaffRepository(db).EnsureIndexes,
		mongostore.NewStockRepository(db).EnsureIndexes,
		mongostore.NewReceiptRepository(db).EnsureIndexes,
		mongostore.NewExpenseRepository(db).EnsureIndexes,
		mongostore.NewPurchaseRepository(db).EnsureIndexes,
		mongostore.NewAttendanceRepository(db).EnsureIndexes,
		mongostore.NewAuditRepository(db).EnsureIndexes,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
