package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/maude/pkg/maude/report"
	"github.com/cognicore/maude/pkg/maude/store"
)

// Store writes run results to a SQLite database file
type Store struct {
	db *sql.DB
}

var _ store.Sink = (*Store)(nil)

// Open opens (creating if needed) a SQLite results database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	input TEXT,
	total_reports INTEGER NOT NULL,
	selected INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	manufacturer TEXT,
	product_code TEXT,
	brand_name TEXT,
	event_text TEXT,
	score REAL,
	causes TEXT NOT NULL,
	root_cause TEXT,
	comparison_result INTEGER NOT NULL,
	PRIMARY KEY(run_id, seq),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_root_cause ON results(root_cause);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores the run and its records in one transaction. seq preserves
// record order.
func (s *Store) SaveRun(ctx context.Context, run store.Run, records []report.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs(id, started_at, input, total_reports, selected) VALUES(?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.Input, run.TotalReports, run.Selected)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO results(run_id, seq, manufacturer, product_code, brand_name, event_text,
	score, causes, root_cause, comparison_result)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		causes := rec.Causes
		if causes == nil {
			causes = []string{}
		}
		causesJSON, err := json.Marshal(causes)
		if err != nil {
			return err
		}
		var score sql.NullFloat64
		if rec.Scored {
			score = sql.NullFloat64{Float64: rec.Score, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i,
			rec.Manufacturer, rec.ProductCode, rec.BrandName, rec.EventText,
			score, string(causesJSON), rec.RootCause, rec.DictionaryHit); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Runs returns all stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, input, total_reports, selected FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var (
			run     store.Run
			started string
			input   sql.NullString
		)
		if err := rows.Scan(&run.ID, &started, &input, &run.TotalReports, &run.Selected); err != nil {
			return nil, err
		}
		run.Input = input.String
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Results returns the records of one run in their original order. Tokens
// are not stored.
func (s *Store) Results(ctx context.Context, runID string) ([]report.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT manufacturer, product_code, brand_name, event_text, score, causes, root_cause, comparison_result
FROM results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.Record
	for rows.Next() {
		var (
			rec        report.Record
			score      sql.NullFloat64
			causesJSON string
			root       sql.NullString
		)
		if err := rows.Scan(&rec.Manufacturer, &rec.ProductCode, &rec.BrandName, &rec.EventText,
			&score, &causesJSON, &root, &rec.DictionaryHit); err != nil {
			return nil, err
		}
		if score.Valid {
			rec.Score, rec.Scored = score.Float64, true
		}
		rec.RootCause = root.String
		if err := json.Unmarshal([]byte(causesJSON), &rec.Causes); err != nil {
			return nil, fmt.Errorf("decode causes: %w", err)
		}
		if len(rec.Causes) == 0 {
			rec.Causes = nil
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
