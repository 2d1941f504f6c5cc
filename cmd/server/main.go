package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"foodcycle/internal/config"
	"foodcycle/internal/ratelimit"
	"foodcycle/internal/server"
	"foodcycle/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	var store server.DocumentStore
	if cfg.DatabaseURL != "" {
		store, err = server.NewGormDocumentStore(cfg.DatabaseURL)
	} else {
		store, err = server.NewFileDocumentStore(cfg.DataFile)
	}
	if err != nil {
		log.Fatalf("failed to init document store: %v", err)
	}

	var writeLimiter *ratelimit.FixedWindowLimiter
	if cfg.WritesPerMinute > 0 {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		writeLimiter, err = ratelimit.NewFixedWindowLimiter(client, "foodcycle:store:writes", cfg.WritesPerMinute, time.Minute)
		if err != nil {
			log.Fatalf("failed to init rate limiter: %v", err)
		}
	}

	httpServer := server.New(server.Config{
		Store:            store,
		MaxDocumentBytes: cfg.MaxDocumentBytes,
		WriteLimiter:     writeLimiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("store server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", "err", err)
	}
}
