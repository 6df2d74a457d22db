package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/config"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/database"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/logger"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Server.LogLevel,
		Environment: cfg.Server.Environment,
		ServiceName: "workflow-migrate",
	})

	// Connect to database
	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Run migrations
	log.Info().Str("table", repository.SnapshotTable).Msg("Running database migrations")
	if err := repository.NewPostgresSnapshotRepository(db).Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	log.Info().Msg("Migrations completed successfully")
}
