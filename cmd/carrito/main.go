package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/nikolayk812/carrito/internal/catalog"
	"github.com/nikolayk812/carrito/internal/port"
	"github.com/nikolayk812/carrito/internal/storage"
	"github.com/nikolayk812/carrito/internal/web"
	"github.com/nikolayk812/carrito/pkg/config"
	"github.com/nikolayk812/carrito/pkg/logger"
	"github.com/nikolayk812/carrito/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "carrito",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, log); err != nil {
		log.Error("fatal", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("buildStorage: %w", err)
	}
	defer cleanup()

	catalogClient, err := catalog.NewClient(cfg.CatalogURL, cfg.CatalogLimit, cfg.CatalogTimeout)
	if err != nil {
		return fmt.Errorf("catalog.NewClient: %w", err)
	}

	server, err := web.New(catalogClient, store, log)
	if err != nil {
		return fmt.Errorf("web.New: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting",
			slog.String("addr", addr),
			slog.String("storage", cfg.StorageDriver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpServer.Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("bye")
	return nil
}

func buildStorage(ctx context.Context, cfg config.Config) (port.CartStorage, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case "file":
		store, err := storage.NewFile(cfg.CartFile)
		return store, noop, err

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("pgxpool.New: %w", err)
		}
		store, err := storage.NewPostgres(pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		store, err := storage.NewRedis(client)
		if err != nil {
			client.Close()
			return nil, noop, err
		}
		return store, func() { client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
