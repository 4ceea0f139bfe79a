package loader

import (
	"context"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/config"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/sirupsen/logrus"
)

// LoadFromConfig loads the dataset from the configured source.
// Database connections are closed once the players are read.
func LoadFromConfig(ctx context.Context, cfg config.DataConfig, log logrus.FieldLogger) (*models.Dataset, error) {
	switch cfg.Source {
	case config.SourceFile:
		return Load(ctx, NewFileSource(cfg.File))

	case config.SourcePostgres:
		store, err := Connect(ctx, cfg.DSN, ConnectOptions{
			Attempts: cfg.ConnectAttempts,
			Delay:    cfg.ConnectDelay,
		}, log)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		if cfg.Migrate {
			if err := store.Migrate(); err != nil {
				return nil, err
			}
		}
		return Load(ctx, store)

	default:
		return nil, fmt.Errorf("unknown players source %q", cfg.Source)
	}
}
