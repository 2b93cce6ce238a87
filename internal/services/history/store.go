package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Listing limits for RecentMatches.
const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

const insertMatchSQL = `
INSERT INTO match_history (
	match_id, mode, status, winner, total_shots, participants, final_state,
	started_at, completed_at, recorded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (match_id) DO NOTHING`

const recentMatchesSQL = `
SELECT match_id, mode, status, winner, total_shots, participants, started_at, completed_at
FROM match_history
ORDER BY completed_at DESC
LIMIT $1`

// Store records finished matches to postgres and serves recent-match
// listings. History is optional; the server runs without one when no
// database is configured.
type Store struct {
	db     *sql.DB
	clock  clock.Clock
	logger *slog.Logger
}

// Open connects to the configured postgres database. It does not touch the
// schema; call Migrate before recording.
func Open(cfg Config, clk clock.Clock, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return NewWithDB(db, clk, logger), nil
}

// NewWithDB wraps an existing database handle
func NewWithDB(db *sql.DB, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		clock:  clk,
		logger: logger.With(slog.String("component", "history-store")),
	}
}

// Migrate applies the embedded schema migrations.
func (s *Store) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading history migrations: %w", err)
	}
	driver, err := postgres.WithInstance(s.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("preparing history migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("preparing history migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying history migrations: %w", err)
	}
	return nil
}

// Ping verifies the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordMatch writes one finished match. Recording the same match twice is
// a no-op.
func (s *Store) RecordMatch(ctx context.Context, summary *model.MatchSummary, final *model.Match) error {
	participants, err := json.Marshal(summary.Participants)
	if err != nil {
		return fmt.Errorf("encoding participants: %w", err)
	}

	var finalState pqtype.NullRawMessage
	if final != nil {
		data, err := json.Marshal(final)
		if err != nil {
			return fmt.Errorf("encoding final state: %w", err)
		}
		finalState = pqtype.NullRawMessage{RawMessage: data, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, insertMatchSQL,
		string(summary.MatchID),
		string(summary.Mode),
		string(summary.Status),
		summary.Winner,
		summary.TotalShots,
		participants,
		finalState,
		summary.StartedAt,
		summary.CompletedAt,
		s.clock.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording match %s: %w", summary.MatchID, err)
	}

	s.logger.Debug("match recorded",
		slog.String("match_id", string(summary.MatchID)),
		slog.String("winner", summary.Winner),
	)

	return nil
}

// RecentMatches lists recorded matches, most recently completed first. A
// non-positive limit uses the default; limits above the maximum are clamped.
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]*model.MatchSummary, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, recentMatchesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("listing match history: %w", err)
	}
	defer rows.Close()

	summaries := make([]*model.MatchSummary, 0, limit)
	for rows.Next() {
		var (
			summary      model.MatchSummary
			participants []byte
		)
		if err := rows.Scan(
			&summary.MatchID,
			&summary.Mode,
			&summary.Status,
			&summary.Winner,
			&summary.TotalShots,
			&participants,
			&summary.StartedAt,
			&summary.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning match history: %w", err)
		}
		if len(participants) > 0 {
			if err := json.Unmarshal(participants, &summary.Participants); err != nil {
				return nil, fmt.Errorf("decoding participants for %s: %w", summary.MatchID, err)
			}
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}

var _ match.Recorder = (*Store)(nil)
