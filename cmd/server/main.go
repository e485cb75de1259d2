package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fakenft/internal/config"
	apphttp "fakenft/internal/http"
	"fakenft/internal/logging"
	"fakenft/internal/seed"
	storepkg "fakenft/internal/store"
	"fakenft/internal/store/memory"
	"fakenft/internal/store/postgres"
)

func main() {
	if _, err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "fakenft.yaml"
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fixture, err := seed.Load(cfg.SeedFile)
	if err != nil {
		logger.Fatal("load seed", zap.Error(err))
	}

	var st storepkg.Store
	if cfg.StoreMode == "postgres" && cfg.DatabaseURL != "" {
		pgStore, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres store unavailable, falling back to memory store", zap.Error(err))
			st = memory.NewStore()
		} else {
			defer pgStore.Close()
			st = pgStore
		}
	} else {
		st = memory.NewStore()
	}
	if err := st.Seed(fixture); err != nil {
		logger.Fatal("seed store", zap.Error(err))
	}

	srv := apphttp.NewServer(cfg, st, logger)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("marketplace API listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("store", cfg.StoreMode),
			zap.Int("collections", len(fixture.Collections)),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
