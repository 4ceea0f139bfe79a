package loader

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

const selectPlayersQuery = `
	SELECT id, firstname, lastname, shortname, sex, picture,
	       country_code, country_picture,
	       rank, points, weight, height, age, last
	FROM players
	ORDER BY position ASC
`

const insertPlayerQuery = `
	INSERT INTO players (
		id, position, firstname, lastname, shortname, sex, picture,
		country_code, country_picture,
		rank, points, weight, height, age, last
	) VALUES (
		:id, :position, :firstname, :lastname, :shortname, :sex, :picture,
		:country_code, :country_picture,
		:rank, :points, :weight, :height, :age, :last
	)
`

// playerRow mirrors the players table
type playerRow struct {
	ID             int           `db:"id"`
	Position       int           `db:"position"`
	Firstname      string        `db:"firstname"`
	Lastname       string        `db:"lastname"`
	Shortname      string        `db:"shortname"`
	Sex            string        `db:"sex"`
	Picture        string        `db:"picture"`
	CountryCode    string        `db:"country_code"`
	CountryPicture string        `db:"country_picture"`
	Rank           int           `db:"rank"`
	Points         int           `db:"points"`
	Weight         float64       `db:"weight"`
	Height         int           `db:"height"`
	Age            int           `db:"age"`
	Last           pq.Int64Array `db:"last"`
}

func (r playerRow) toPlayer() models.Player {
	last := make([]int, len(r.Last))
	for i, v := range r.Last {
		last[i] = int(v)
	}

	return models.Player{
		ID:        r.ID,
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Shortname: r.Shortname,
		Sex:       r.Sex,
		Picture:   r.Picture,
		Country: models.Country{
			Code:    r.CountryCode,
			Picture: r.CountryPicture,
		},
		Data: models.PlayerData{
			Rank:   r.Rank,
			Points: r.Points,
			Weight: r.Weight,
			Height: r.Height,
			Age:    r.Age,
			Last:   last,
		},
	}
}

func rowFromPlayer(position int, p models.Player) playerRow {
	last := make(pq.Int64Array, len(p.Data.Last))
	for i, v := range p.Data.Last {
		last[i] = int64(v)
	}

	return playerRow{
		ID:             p.ID,
		Position:       position,
		Firstname:      p.Firstname,
		Lastname:       p.Lastname,
		Shortname:      p.Shortname,
		Sex:            p.Sex,
		Picture:        p.Picture,
		CountryCode:    p.Country.Code,
		CountryPicture: p.Country.Picture,
		Rank:           p.Data.Rank,
		Points:         p.Data.Points,
		Weight:         p.Data.Weight,
		Height:         p.Data.Height,
		Age:            p.Data.Age,
		Last:           last,
	}
}

// ConnectOptions controls how hard Connect tries before giving up
type ConnectOptions struct {
	Attempts int
	Delay    time.Duration
}

// PostgresStore reads and writes the players table
type PostgresStore struct {
	db  *sqlx.DB
	log logrus.FieldLogger
}

// NewPostgresStore wraps an open database handle
func NewPostgresStore(db *sqlx.DB, log logrus.FieldLogger) *PostgresStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PostgresStore{
		db:  db,
		log: log.WithField("component", "postgres_store"),
	}
}

// Connect opens the players database, retrying until it answers a ping
func Connect(ctx context.Context, dsn string, opts ConnectOptions, log logrus.FieldLogger) (*PostgresStore, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var db *sqlx.DB
	err := retry.Do(
		func() error {
			conn, err := sqlx.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := conn.PingContext(pingCtx); err != nil {
				conn.Close()
				return fmt.Errorf("failed to ping database: %w", err)
			}

			db = conn
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(opts.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).WithField("attempt", n+1).Warn("Players database not reachable, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return NewPostgresStore(db, log), nil
}

// Name describes the source
func (s *PostgresStore) Name() string {
	return "postgres"
}

// Migrate applies the embedded schema migrations
func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(s.log)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(s.db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrating players schema: %w", err)
	}
	return nil
}

// Load reads every player in dataset order
func (s *PostgresStore) Load(ctx context.Context) ([]models.Player, error) {
	var rows []playerRow
	if err := s.db.SelectContext(ctx, &rows, selectPlayersQuery); err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}

	players := make([]models.Player, len(rows))
	for i, row := range rows {
		players[i] = row.toPlayer()
	}
	return players, nil
}

// Import replaces the table contents with players, keeping their order
func (s *PostgresStore) Import(ctx context.Context, players []models.Player) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("clearing players: %w", err)
	}

	for i, p := range players {
		if _, err := tx.NamedExecContext(ctx, insertPlayerQuery, rowFromPlayer(i, p)); err != nil {
			return fmt.Errorf("inserting player %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	s.log.WithField("players", len(players)).Info("Imported players")
	return nil
}

// Close releases the database handle
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
