package main

import (
	"context"
	"flag"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/config"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/loader"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/logging"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	file := flag.String("file", cfg.Data.File, "Players JSON document to import")
	dsn := flag.String("dsn", cfg.Data.DSN, "Players database DSN")
	migrate := flag.Bool("migrate", cfg.Data.Migrate, "Apply schema migrations before importing")
	flag.Parse()

	log, err := logging.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Validate the document before touching the database
	dataset, err := loader.Load(ctx, loader.NewFileSource(*file))
	if err != nil {
		log.WithError(err).Fatal("Failed to read players document")
	}

	store, err := loader.Connect(ctx, *dsn, loader.ConnectOptions{
		Attempts: cfg.Data.ConnectAttempts,
		Delay:    cfg.Data.ConnectDelay,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to players database")
	}
	defer store.Close()

	if *migrate {
		if err := store.Migrate(); err != nil {
			log.WithError(err).Fatal("Failed to migrate players database")
		}
	}

	if err := store.Import(ctx, dataset.Players); err != nil {
		log.WithError(err).Fatal("Failed to import players")
	}

	log.WithFields(logrus.Fields{
		"file":    *file,
		"players": dataset.Len(),
	}).Info("✓ Import complete")
}
