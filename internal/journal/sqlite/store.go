// Package sqlite provides a SQLite-backed snapshot journal.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/matchday/internal/journal/sqlite/migrations"
	"github.com/louisbranch/matchday/internal/match"
	"github.com/louisbranch/matchday/internal/platform/storage/sqlitemigrate"
)

// Store persists arena snapshots in SQLite, one row per state transition.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

// Open opens a SQLite journal store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record inserts one snapshot row.
func (s *Store) Record(ctx context.Context, snap match.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	players, err := json.Marshal(snap.Players)
	if err != nil {
		return fmt.Errorf("encode player statuses: %w", err)
	}
	goalies, err := json.Marshal(snap.Goalies)
	if err != nil {
		return fmt.Errorf("encode goalie statuses: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO snapshots (
		   recorded_at,
		   players,
		   goalies,
		   referee,
		   players_arrived,
		   goalies_arrived,
		   free_players,
		   free_goalies,
		   next_team_id
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.clock().UTC().UnixMilli(),
		string(players),
		string(goalies),
		int(snap.Referee),
		snap.Counters.PlayersArrived,
		snap.Counters.GoaliesArrived,
		snap.Counters.FreePlayers,
		snap.Counters.FreeGoalies,
		snap.Counters.NextTeamID,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns every recorded snapshot in insertion order.
func (s *Store) ListSnapshots(ctx context.Context) ([]match.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT players, goalies, referee,
		        players_arrived, goalies_arrived,
		        free_players, free_goalies, next_team_id
		   FROM snapshots
		  ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []match.Snapshot
	for rows.Next() {
		var (
			players string
			goalies string
			referee int
			snap    match.Snapshot
		)
		if err := rows.Scan(
			&players,
			&goalies,
			&referee,
			&snap.Counters.PlayersArrived,
			&snap.Counters.GoaliesArrived,
			&snap.Counters.FreePlayers,
			&snap.Counters.FreeGoalies,
			&snap.Counters.NextTeamID,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(players), &snap.Players); err != nil {
			return nil, fmt.Errorf("decode player statuses: %w", err)
		}
		if err := json.Unmarshal([]byte(goalies), &snap.Goalies); err != nil {
			return nil, fmt.Errorf("decode goalie statuses: %w", err)
		}
		snap.Referee = match.RefereeStatus(referee)
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}
