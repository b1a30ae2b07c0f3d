package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artemisiagab/skill-sport-briefing/internal/app"
	"github.com/artemisiagab/skill-sport-briefing/internal/config"
	"github.com/artemisiagab/skill-sport-briefing/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "publish failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("publish starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, err := app.NewPublisher(ctx, cfg)
	if err != nil {
		logger.ErrorObj("failed to initialize publisher", "error", err)
		return err
	}

	if err := publisher.Run(ctx); err != nil {
		return fmt.Errorf("publish run: %w", err)
	}

	return nil
}
