// Package cache publishes the loaded dataset views to Redis. The service only
// writes; ReadStatistics and ReadLeaderboard are the consumer-side API for
// services reading those keys.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/redis/go-redis/v9"
)

// Keys and streams written by the service
const (
	StatisticsKey  = "players:statistics"
	LeaderboardKey = "players:leaderboard"
	SnapshotStream = "players.snapshots"
)

// TTL constants
const (
	StatisticsTTL  = 24 * time.Hour
	LeaderboardTTL = 24 * time.Hour
)

// RedisWriter publishes dataset views to Redis for other services
type RedisWriter struct {
	client *redis.Client
}

// NewRedisWriter creates a new Redis writer
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{
		client: client,
	}
}

// WriteStatistics stores the statistics view as JSON
func (w *RedisWriter) WriteStatistics(ctx context.Context, stats models.Statistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshaling statistics: %w", err)
	}

	return w.client.Set(ctx, StatisticsKey, data, StatisticsTTL).Err()
}

// ReadStatistics retrieves the statistics view
func (w *RedisWriter) ReadStatistics(ctx context.Context) (*models.Statistics, error) {
	data, err := w.client.Get(ctx, StatisticsKey).Result()
	if err != nil {
		return nil, err
	}

	var stats models.Statistics
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("unmarshaling statistics: %w", err)
	}

	return &stats, nil
}

// WriteLeaderboard stores player ids in the given (points-sorted) order
func (w *RedisWriter) WriteLeaderboard(ctx context.Context, players []models.Player) error {
	values := make([]interface{}, len(players))
	for i, p := range players {
		values[i] = p.ID
	}

	pipe := w.client.TxPipeline()
	pipe.Del(ctx, LeaderboardKey)
	if len(values) > 0 {
		pipe.RPush(ctx, LeaderboardKey, values...)
		pipe.Expire(ctx, LeaderboardKey, LeaderboardTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// ReadLeaderboard retrieves the leaderboard ids, best first
func (w *RedisWriter) ReadLeaderboard(ctx context.Context) ([]string, error) {
	return w.client.LRange(ctx, LeaderboardKey, 0, -1).Result()
}

// PublishSnapshot announces a freshly loaded dataset on the snapshot stream.
// stats may be nil when the dataset is empty.
func (w *RedisWriter) PublishSnapshot(ctx context.Context, ds *models.Dataset, stats *models.Statistics) error {
	values := map[string]interface{}{
		"snapshot_id": ds.SnapshotID,
		"source":      ds.Source,
		"players":     ds.Len(),
		"loaded_at":   ds.LoadedAt.Format(time.RFC3339),
	}

	if stats != nil {
		data, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshaling statistics: %w", err)
		}
		values["statistics"] = string(data)
	}

	return w.client.XAdd(ctx, &redis.XAddArgs{
		Stream: SnapshotStream,
		Values: values,
	}).Err()
}
