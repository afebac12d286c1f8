package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/klassico/storefront/internal/config"
	"github.com/klassico/storefront/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("KLASSICO_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Log.Environment,
		ServiceName: "klassico-admin",
		File:        cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
