// Package results persists finished game runs in SQLite so strategies can be
// compared across invocations. It sits outside the game kernel: sim never
// imports it.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one finished game as stored.
type Run struct {
	ID                 string
	Batch              string // groups runs created by one compare invocation
	Scenario           string
	Policy             string
	Seed               int64
	Rounds             int
	EndReason          string
	TotalCost          int
	Rank               string
	VaccinationsUsed   int
	InfectionsOccurred int
	PeakInfected       int
	CreatedAt          time.Time
}

// PolicyStats aggregates stored runs of one policy.
type PolicyStats struct {
	Policy        string
	Runs          int
	MeanCost      float64
	MinCost       int
	MaxCost       int
	MeanRounds    float64
	EradicatedPct float64
}

// Store persists runs in SQLite.
type Store struct {
	db *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) a results database and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("results path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection: an in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate results db: %w", err)
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		batch TEXT NOT NULL,
		scenario TEXT NOT NULL,
		policy TEXT NOT NULL,
		seed INTEGER NOT NULL,
		rounds INTEGER NOT NULL,
		end_reason TEXT NOT NULL,
		total_cost INTEGER NOT NULL,
		rank TEXT NOT NULL,
		vaccinations_used INTEGER NOT NULL,
		infections_occurred INTEGER NOT NULL,
		peak_infected INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy);
	CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch);
	`
	_, err := s.db.Exec(schema)
	return err
}

// NewBatchID returns a fresh id for grouping runs.
func NewBatchID() string {
	return uuid.NewString()
}

// Record inserts run, assigning an id and timestamp when missing, and
// returns the stored id.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(run.Policy) == "" {
		return "", fmt.Errorf("policy is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Batch == "" {
		run.Batch = run.ID
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, batch, scenario, policy, seed, rounds, end_reason, total_cost, rank,
			vaccinations_used, infections_occurred, peak_infected, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Batch, run.Scenario, run.Policy, run.Seed, run.Rounds, run.EndReason,
		run.TotalCost, run.Rank, run.VaccinationsUsed, run.InfectionsOccurred, run.PeakInfected,
		toMillis(run.CreatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.ID, nil
}

// List returns stored runs, newest first. An empty policy matches all runs;
// limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, policy string, limit int) ([]Run, error) {
	query := `
		SELECT id, batch, scenario, policy, seed, rounds, end_reason, total_cost, rank,
		       vaccinations_used, infections_occurred, peak_infected, created_at
		FROM runs`
	var args []any
	if policy != "" {
		query += ` WHERE policy = ?`
		args = append(args, policy)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.Batch, &r.Scenario, &r.Policy, &r.Seed, &r.Rounds, &r.EndReason,
			&r.TotalCost, &r.Rank, &r.VaccinationsUsed, &r.InfectionsOccurred, &r.PeakInfected, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = fromMillis(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Stats aggregates stored runs per policy, ordered by mean cost ascending.
func (s *Store) Stats(ctx context.Context) ([]PolicyStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT policy,
		       COUNT(*),
		       AVG(total_cost),
		       MIN(total_cost),
		       MAX(total_cost),
		       AVG(rounds),
		       100.0 * SUM(CASE WHEN end_reason = 'eradicated' THEN 1 ELSE 0 END) / COUNT(*)
		FROM runs
		GROUP BY policy
		ORDER BY AVG(total_cost), policy`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []PolicyStats
	for rows.Next() {
		var ps PolicyStats
		if err := rows.Scan(&ps.Policy, &ps.Runs, &ps.MeanCost, &ps.MinCost, &ps.MaxCost, &ps.MeanRounds, &ps.EradicatedPct); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}
