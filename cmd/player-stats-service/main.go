package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/cache"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/config"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/loader"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/logging"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/service"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.LoadConfig()

	log, err := logging.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log configuration")
	}

	log.Info("=== Fortuna Player Stats Service ===")

	// Load the dataset once; the service never serves without it
	ctx := context.Background()
	dataset, err := loader.LoadFromConfig(ctx, cfg.Data, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load players")
	}

	log.WithFields(logrus.Fields{
		"players":     dataset.Len(),
		"source":      dataset.Source,
		"snapshot_id": dataset.SnapshotID,
	}).Info("✓ Players loaded")

	svc := service.New(dataset, cfg.Data.StatsCacheTTL, log)

	if cfg.Redis.URL != "" {
		publishSnapshot(ctx, cfg.Redis, svc, log)
	}

	handler := handlers.NewHandler(svc, log)
	router := handlers.NewRouter(handler, cfg.Server.CORSOrigins, log)

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("✓ Player Stats Service listening")
		log.Info("  Endpoints:")
		log.Info("    GET  /health")
		log.Info("    GET  /players")
		log.Info("    GET  /players/{id}")
		log.Info("    GET  /statistics")
		log.Infof("    GET  %s/... (legacy aliases)", handlers.LegacyPrefix)

		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server error")
		}

	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Warn("Received signal")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Graceful shutdown failed")
			if err := srv.Close(); err != nil {
				log.WithError(err).Error("Could not stop server")
			}
		}
	}

	log.Info("✓ Shutdown complete")
}

// publishSnapshot pushes the loaded dataset views to Redis. Failures are
// logged and never stop the service.
func publishSnapshot(ctx context.Context, cfg config.RedisConfig, svc *service.PlayerStatsService, log logrus.FieldLogger) {
	log = log.WithField("component", "snapshot_publisher")

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.WithError(err).Warn("Invalid Redis URL, skipping snapshot publishing")
		return
	}

	client := redis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unreachable, skipping snapshot publishing")
		return
	}

	writer := cache.NewRedisWriter(client)

	var statsPtr *models.Statistics
	if stats, err := svc.Statistics(); err == nil {
		if err := writer.WriteStatistics(ctx, stats); err != nil {
			log.WithError(err).Warn("Failed to write statistics")
		}
		statsPtr = &stats
	}

	if err := writer.WriteLeaderboard(ctx, svc.Players()); err != nil {
		log.WithError(err).Warn("Failed to write leaderboard")
	}

	if err := writer.PublishSnapshot(ctx, svc.Dataset(), statsPtr); err != nil {
		log.WithError(err).Warn("Failed to publish snapshot")
		return
	}

	log.WithField("stream", cache.SnapshotStream).Info("✓ Snapshot published to Redis")
}
