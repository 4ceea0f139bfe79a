package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrMissingPlayers is returned when a document has no players field
	ErrMissingPlayers = errors.New("document has no players field")
	// ErrDuplicateID is returned when two players share an id
	ErrDuplicateID = errors.New("duplicate player id")
	// ErrInvalidHeight is returned for a player whose height is not positive
	ErrInvalidHeight = errors.New("player height must be positive")
)

// Source produces the raw player collection
type Source interface {
	Load(ctx context.Context) ([]models.Player, error)
	Name() string
}

// FileSource reads a JSON players document from disk
type FileSource struct {
	path string
}

// NewFileSource creates a source for the document at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name describes the source
func (f *FileSource) Name() string {
	return "file:" + f.path
}

// Load reads and decodes the document
func (f *FileSource) Load(ctx context.Context) ([]models.Player, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading players file: %w", err)
	}
	return Decode(data)
}

// Decode parses a players document
func Decode(data []byte) ([]models.Player, error) {
	var doc models.PlayersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding players document: %w", err)
	}
	if doc.Players == nil {
		return nil, ErrMissingPlayers
	}
	return doc.Players, nil
}

// Load runs src once and returns the validated, immutable dataset
func Load(ctx context.Context, src Source) (*models.Dataset, error) {
	players, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading players from %s: %w", src.Name(), err)
	}

	if err := Validate(players); err != nil {
		return nil, fmt.Errorf("validating players from %s: %w", src.Name(), err)
	}

	return &models.Dataset{
		Players:    players,
		SnapshotID: uuid.NewString(),
		Source:     src.Name(),
		LoadedAt:   time.Now().UTC(),
	}, nil
}

// Validate checks id uniqueness and positive heights
func Validate(players []models.Player) error {
	seen := make(map[int]struct{}, len(players))
	for _, p := range players {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Data.Height <= 0 {
			return fmt.Errorf("%w: player %d has height %d", ErrInvalidHeight, p.ID, p.Data.Height)
		}
	}
	return nil
}
