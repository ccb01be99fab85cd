package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the run ledger using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	crop        TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	error       TEXT NOT NULL DEFAULT '',
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME,
	duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_layers (
	id               TEXT PRIMARY KEY,
	run_id           TEXT NOT NULL REFERENCES runs(id),
	factor           TEXT NOT NULL,
	output_path      TEXT NOT NULL,
	suitable_cells   INTEGER NOT NULL,
	moderate_cells   INTEGER NOT NULL,
	unsuitable_cells INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_crop ON runs(crop);
CREATE INDEX IF NOT EXISTS idx_run_layers_run_id ON run_layers(run_id);
`

// Migrate creates the ledger schema if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRun records the start of a pipeline run.
func (s *SQLiteStore) CreateRun(ctx context.Context, crop, outputDir string) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, crop, output_dir, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, crop, outputDir, string(RunStatusRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &Run{
		ID:        id,
		Crop:      crop,
		OutputDir: outputDir,
		Status:    RunStatusRunning,
		StartedAt: now,
	}, nil
}

// AddLayer records the outcome of one classified factor layer.
func (s *SQLiteStore) AddLayer(ctx context.Context, runID string, layer LayerStat) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_layers (id, run_id, factor, output_path, suitable_cells, moderate_cells, unsuitable_cells)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, layer.Factor, layer.OutputPath,
		layer.SuitableCells, layer.ModerateCells, layer.UnsuitableCells,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert layer %s for run %s", layer.Factor, runID)
	}
	return nil
}

// FinishRun marks a run complete or failed.
func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status RunStatus, errMsg string, duration time.Duration) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ?, duration_ms = ? WHERE id = ?`,
		string(status), errMsg, time.Now().UTC(), duration.Milliseconds(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

// GetRun returns one run with its layer stats.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, crop, output_dir, status, error, started_at, COALESCE(finished_at, started_at), duration_ms
		 FROM runs WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT factor, output_path, suitable_cells, moderate_cells, unsuitable_cells
		 FROM run_layers WHERE run_id = ? ORDER BY factor`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query layers for run %s", runID)
	}
	defer rows.Close()

	for rows.Next() {
		var l LayerStat
		if err := rows.Scan(&l.Factor, &l.OutputPath, &l.SuitableCells, &l.ModerateCells, &l.UnsuitableCells); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan layer row")
		}
		run.Layers = append(run.Layers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate layer rows")
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first, without layer detail.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, crop, output_dir, status, error, started_at, COALESCE(finished_at, started_at), duration_ms
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var status string
	if err := row.Scan(&run.ID, &run.Crop, &run.OutputDir, &status, &run.Error,
		&run.StartedAt, &run.FinishedAt, &run.DurationMs); err != nil {
		if err == sql.ErrNoRows {
			return nil, eris.Wrap(err, "sqlite: run not found")
		}
		return nil, eris.Wrap(err, "sqlite: scan run row")
	}
	run.Status = RunStatus(status)
	return &run, nil
}
