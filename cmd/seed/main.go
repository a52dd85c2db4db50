package main

import (
	"context"
	"log"

	"greenleaf-commerce/internal/config"
	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/logging"
	"greenleaf-commerce/internal/seed"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatal("apply seed data", zap.Error(err))
	}

	logger.Info("seed data applied")
}
