package service

import (
	"errors"
	"sort"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/stats"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/jellydator/ttlcache/v3"
	"github.com/sirupsen/logrus"
)

// ErrPlayerNotFound is returned when no player has the requested id
var ErrPlayerNotFound = errors.New("player not found")

const statisticsKey = "statistics"

// PlayerStatsService answers read-only queries over a loaded dataset
type PlayerStatsService struct {
	dataset *models.Dataset
	cache   *ttlcache.Cache[string, models.Statistics]
	log     logrus.FieldLogger
}

// New creates a service over dataset. Statistics are memoized for statsTTL;
// a zero TTL keeps them for the lifetime of the process.
func New(dataset *models.Dataset, statsTTL time.Duration, log logrus.FieldLogger) *PlayerStatsService {
	if dataset == nil {
		dataset = &models.Dataset{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &PlayerStatsService{
		dataset: dataset,
		cache: ttlcache.New[string, models.Statistics](
			ttlcache.WithTTL[string, models.Statistics](statsTTL),
		),
		log: log.WithField("component", "player_stats_service"),
	}
}

// Dataset returns the dataset backing the service
func (s *PlayerStatsService) Dataset() *models.Dataset {
	return s.dataset
}

// Players returns every player sorted by points, highest first.
// Players with equal points keep their dataset order.
func (s *PlayerStatsService) Players() []models.Player {
	sorted := make([]models.Player, len(s.dataset.Players))
	copy(sorted, s.dataset.Players)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Data.Points > sorted[j].Data.Points
	})

	return sorted
}

// Player returns the first player with the given id
func (s *PlayerStatsService) Player(id int) (models.Player, error) {
	for _, p := range s.dataset.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Player{}, ErrPlayerNotFound
}

// Statistics returns the aggregate statistics of the dataset.
// Returns stats.ErrEmptyCollection when the dataset has no players.
func (s *PlayerStatsService) Statistics() (models.Statistics, error) {
	if item := s.cache.Get(statisticsKey); item != nil {
		return item.Value(), nil
	}

	result, err := stats.Compute(s.dataset.Players)
	if err != nil {
		return models.Statistics{}, err
	}

	s.cache.Set(statisticsKey, result, ttlcache.DefaultTTL)
	s.log.WithFields(logrus.Fields{
		"snapshot_id":  s.dataset.SnapshotID,
		"best_country": result.BestWinRatioCountry,
	}).Debug("Computed statistics")

	return result, nil
}
