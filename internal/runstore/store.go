// Package runstore persists completed check runs for the history command
// and the status server.
package runstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/repowatch/repowatch/internal/domain"
)

// Store provides SQLite-backed run persistence
type Store struct {
	db *sql.DB
}

// Run is one persisted reporting cycle.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	Report     string    `json:"report"`
}

// TaskResult is one task's outcome within a run. Kind is "sync" or "status".
type TaskResult struct {
	RunID   string         `json:"run_id"`
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Verdict domain.Verdict `json:"verdict"`
	Output  string         `json:"output"`
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Run migrations
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its per-task results in one transaction.
func (s *Store) SaveRun(run *Run, results []TaskResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, finished_at, passed, failed, errors, warnings, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.StartedAt, run.FinishedAt,
		run.Passed, run.Failed, run.Errors, run.Warnings, run.Report,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, r := range results {
		_, err = tx.Exec(`
			INSERT INTO results (run_id, name, kind, verdict, output)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, r.Name, r.Kind, string(r.Verdict), r.Output)
		if err != nil {
			return fmt.Errorf("inserting result %s: %w", r.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, passed, failed, errors, warnings, report
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LatestRun returns the most recent run, or nil if none exists.
func (s *Store) LatestRun() (*Run, error) {
	runs, err := s.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// GetResults returns the per-task results of a run in insertion order.
func (s *Store) GetResults(runID string) ([]TaskResult, error) {
	rows, err := s.db.Query(`
		SELECT run_id, name, kind, verdict, output
		FROM results WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []TaskResult
	for rows.Next() {
		var r TaskResult
		var verdict string
		if err := rows.Scan(&r.RunID, &r.Name, &r.Kind, &verdict, &r.Output); err != nil {
			return nil, err
		}
		r.Verdict = domain.Verdict(verdict)
		results = append(results, r)
	}

	return results, rows.Err()
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.Passed, &run.Failed, &run.Errors, &run.Warnings, &run.Report)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
