package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dataprotection/internal/app/server"
	"dataprotection/internal/platform/config"
	"dataprotection/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	appLogger := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
