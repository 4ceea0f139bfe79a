package main

import (
	"context"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/config"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/lambdaproxy"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/loader"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/logging"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/service"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	log, err := logging.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log configuration")
	}

	// Loaded once per cold start
	dataset, err := loader.LoadFromConfig(context.Background(), cfg.Data, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load players")
	}
	log.WithFields(logrus.Fields{
		"players":     dataset.Len(),
		"snapshot_id": dataset.SnapshotID,
	}).Info("Players loaded")

	svc := service.New(dataset, cfg.Data.StatsCacheTTL, log)
	router := handlers.NewRouter(handlers.NewHandler(svc, log), cfg.Server.CORSOrigins, log)

	lambda.Start(lambdaproxy.NewHandler(router))
}
