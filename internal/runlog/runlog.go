// Package runlog persists completed equilibrium runs to a local SQLite
// database so past results can be reviewed with `eqstat history`.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hello2himel/equilibrium-statistic/internal/equilibrium"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    dataset TEXT NOT NULL,
    epsilon REAL,
    stagnation_only INTEGER NOT NULL DEFAULT 0,
    termination TEXT NOT NULL,
    iterations INTEGER NOT NULL,
    value REAL NOT NULL,
    elapsed_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Record is one completed run as stored in the log.
type Record struct {
	ID          string
	StartedAt   time.Time
	Dataset     []float64
	Criterion   equilibrium.Criterion
	Termination equilibrium.Termination
	Iterations  int
	Value       float64
	Elapsed     time.Duration
}

// Log is a SQLite-backed append-only log of completed runs.
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run log at path.
func Open(path string) (*Log, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// WAL mode so a history listing does not block a concurrent batch run.
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping run log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize run log schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends a completed run to the log. The record's ID and StartedAt
// are assigned here if unset, and the assigned ID is returned.
func (l *Log) Record(ctx context.Context, rec *Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}

	var epsilon sql.NullFloat64
	if !rec.Criterion.StagnationOnly {
		epsilon = sql.NullFloat64{Float64: rec.Criterion.Epsilon, Valid: true}
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, dataset, epsilon, stagnation_only,
		                  termination, iterations, value, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt,
		encodeDataset(rec.Dataset),
		epsilon,
		rec.Criterion.StagnationOnly,
		string(rec.Termination),
		rec.Iterations,
		rec.Value,
		rec.Elapsed.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return rec.ID, nil
}

// List returns the most recent runs, newest first, up to limit.
func (l *Log) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, started_at, dataset, epsilon, stagnation_only,
		       termination, iterations, value, elapsed_ms
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var dataset string
		var epsilon sql.NullFloat64
		var termination string
		var elapsedMs int64

		err := rows.Scan(
			&rec.ID,
			&rec.StartedAt,
			&dataset,
			&epsilon,
			&rec.Criterion.StagnationOnly,
			&termination,
			&rec.Iterations,
			&rec.Value,
			&elapsedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if epsilon.Valid {
			rec.Criterion.Epsilon = epsilon.Float64
		}
		rec.Termination = equilibrium.Termination(termination)
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		rec.Dataset, err = decodeDataset(dataset)
		if err != nil {
			return nil, fmt.Errorf("corrupt dataset in run %s: %w", rec.ID, err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return records, nil
}

// Clear deletes every record and returns how many were removed.
func (l *Log) Clear(ctx context.Context) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear run log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared runs: %w", err)
	}
	return n, nil
}

// encodeDataset stores datasets as comma-separated full-precision floats,
// the same shape users type them in.
func encodeDataset(data []float64) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func decodeDataset(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	data := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return data, nil
}
