package main

import (
	"os"
	"time"

	"dataprotection/internal/app/demo"
	"dataprotection/internal/platform/config"
	"dataprotection/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	appLogger := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		appLogger.Warn("config load failed, using defaults", "err", err)
	}

	if _, err := demo.Run(os.Stdout, time.Now()); err != nil {
		appLogger.Error("data protection run failed", "err", err)
		os.Exit(1)
	}
}
