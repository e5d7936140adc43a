package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-sportsbook/internal/cache"
	"go-sportsbook/internal/config"
	"go-sportsbook/internal/server"
	"go-sportsbook/internal/sportsbook"
	"go-sportsbook/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool := &sportsbook.BettingPool{
		Authority:          config.Env("SPORTSBOOK_AUTHORITY", "operator"),
		TreasuryIdentity:   config.Env("SPORTSBOOK_TREASURY", "treasury"),
		ProtocolFeeBps:     cfg.ProtocolFeeBps,
		WinnerShareBps:     cfg.WinnerShareBps,
		SeasonPoolShareBps: cfg.SeasonPoolShareBps,
	}

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		config.Env("BLUEPRINT_DB_USERNAME", "postgres"),
		config.Env("BLUEPRINT_DB_PASSWORD", "postgres"),
		config.Env("BLUEPRINT_DB_HOST", "localhost"),
		config.Env("BLUEPRINT_DB_PORT", "5432"),
		config.Env("BLUEPRINT_DB_DATABASE", "sportsbook"),
		config.Env("BLUEPRINT_DB_SCHEMA", "public"),
	)

	dbPool, err := store.NewPool(ctx, dbURL)
	if err != nil {
		logger.Fatal("[API] failed to connect to database", zap.Error(err))
	}
	repo := store.New(dbPool)

	var cacheService cache.Service
	var locker sportsbook.RoundLocker
	if cs := cache.New(); cs != nil {
		cacheService = cs
		locker = cs
	}

	treasury := sportsbook.NewInMemoryTreasury()
	oracle := sportsbook.NewDevOracle()
	hub := sportsbook.NewHub(logger)
	go hub.Run()

	manager := sportsbook.NewManager(pool, oracle, treasury, hub, logger, repo, locker)
	if err := manager.LoadState(ctx); err != nil {
		logger.Fatal("[API] failed to rebuild state from store", zap.Error(err))
	}

	if cacheService != nil {
		go relayRoundEvents(ctx, cacheService, hub, logger)
	}

	srv := server.New(manager, hub, logger)
	srv.RegisterFiberRoutes()

	go gracefulShutdown(srv, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("[API] starting server", zap.String("addr", addr))
	if err := srv.Listen(addr); err != nil {
		logger.Fatal("[API] server stopped", zap.Error(err))
	}
}

// relayRoundEvents subscribes to the cross-replica events channel and
// rebroadcasts every message (including ones this replica published) onto
// the local Hub, so PublishEvent/Subscribe is the single path connected
// clients' events flow through regardless of which replica settled a round.
func relayRoundEvents(ctx context.Context, cacheService cache.Service, hub *sportsbook.Hub, logger *zap.Logger) {
	sub := cacheService.Subscribe(ctx)
	defer sub.Close()

	ch := sub.Channel()
	for msg := range ch {
		hub.Broadcast([]byte(msg.Payload))
	}
}

func gracefulShutdown(srv interface{ ShutdownWithTimeout(time.Duration) error }, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("[API] shutting down")
	if err := srv.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("[API] shutdown error", zap.Error(err))
	}
}
