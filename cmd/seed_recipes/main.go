package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/config"
	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/database"
	"github.com/pageza/alchemorsel-discover/backend/internal/logging"
)

func main() {
	file := flag.String("file", "", "JSON recipe file to seed instead of the embedded catalog")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, string(cfg.Env))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	var provider catalog.Provider = catalog.EmbeddedProvider{}
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			logger.Fatal("failed to read recipe file", zap.String("file", *file), zap.Error(err))
		}
		recipes, err := catalog.DecodeRecipes(data)
		if err != nil {
			logger.Fatal("failed to decode recipe file", zap.String("file", *file), zap.Error(err))
		}
		provider = staticProvider(recipes)
	}

	// Seeded recipes pass the same validation as the served catalog.
	cat, err := catalog.Load(ctx, provider, logger)
	if err != nil {
		logger.Fatal("invalid recipes", zap.Error(err))
	}

	if err := catalog.Seed(ctx, db, cat.All()); err != nil {
		logger.Fatal("failed to seed recipes", zap.Error(err))
	}
	logger.Info("seeded recipes", zap.Int("count", cat.Len()))
}
