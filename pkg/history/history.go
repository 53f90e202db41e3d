// Package history persists completed runs to a local SQLite database so a
// learner can look back at what failed and how often. Recording is off by
// default; the default run's only side effect stays the console diagnosis.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver
	_ "modernc.org/sqlite"
)

// Run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Run is one recorded execution of the target script
type Run struct {
	ID         string
	Engine     string
	Target     string
	Outcome    string
	Rule       string
	Message    string
	ExitCode   int
	DurationMs int64
	CreatedAt  time.Time
}

// RuleCount aggregates how often a rule explained a failure
type RuleCount struct {
	Rule  string
	Count int
}

// Stats summarizes the recorded runs
type Stats struct {
	Total     int
	Successes int
	Failures  int
	ByRule    []RuleCount
}

// Store records runs in SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes the store at path, creating the directory and schema as
// needed
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initialize(); err != nil {
		_ = db.Close()

		return nil, err
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		engine TEXT NOT NULL,
		target TEXT NOT NULL,
		outcome TEXT NOT NULL,
		rule TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		exit_code INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
	CREATE INDEX IF NOT EXISTS idx_runs_rule ON runs(rule);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one completed run
func (s *Store) Record(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, engine, target, outcome, rule, message, exit_code, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Engine, run.Target, run.Outcome, run.Rule, run.Message, run.ExitCode, run.DurationMs, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// List returns the most recent runs, newest first
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, engine, target, outcome, rule, message, exit_code, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run

	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Engine, &run.Target, &run.Outcome, &run.Rule,
			&run.Message, &run.ExitCode, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}

// GetStats aggregates run counts overall and per explaining rule
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		 FROM runs`, OutcomeSuccess, OutcomeFailure).
		Scan(&stats.Total, &stats.Successes, &stats.Failures)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate runs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rule, COUNT(*) FROM runs
		 WHERE outcome = ? AND rule != ''
		 GROUP BY rule ORDER BY COUNT(*) DESC, rule ASC`, OutcomeFailure)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc RuleCount
		if err := rows.Scan(&rc.Rule, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan rule count: %w", err)
		}

		stats.ByRule = append(stats.ByRule, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rule counts: %w", err)
	}

	return stats, nil
}
