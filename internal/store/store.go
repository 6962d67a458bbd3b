// Package store keeps the run history in a local SQLite file: one row per
// processing run with its flow, file counts and output paths.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/ThiagoElux01/Comex-app/constants"
	"github.com/ThiagoElux01/Comex-app/internal/common"
)

// Run is one processing run.
type Run struct {
	ID           uuid.UUID
	Flow         string
	InputDir     string
	Status       constants.RunStatus
	FilesTotal   int
	FilesFailed  int
	Outputs      []string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Store is the run-history store. All goroutines serialize through one
// connection; SetMaxOpenConns(1) avoids SQLITE_BUSY from concurrent writers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and creates if needed) the history database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.NewAppError(common.CodeDatabase, "opening run history", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		flow TEXT NOT NULL,
		input_dir TEXT NOT NULL,
		status TEXT NOT NULL,
		files_total INTEGER NOT NULL DEFAULT 0,
		files_failed INTEGER NOT NULL DEFAULT 0,
		outputs TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL,
		finished_at INTEGER
	)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return common.NewAppError(common.CodeDatabase, "creating runs table", err)
	}
	return nil
}

// Begin records the start of a run and returns its id.
func (s *Store) Begin(ctx context.Context, flow, inputDir string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, flow, input_dir, status, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id.String(), flow, inputDir, string(constants.RunStatusRunning),
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return uuid.Nil, common.NewAppError(common.CodeDatabase, "recording run start", err)
	}
	s.logger.Info("store.run.begin", "run_id", id, "flow", flow, "input_dir", inputDir)
	return id, nil
}

// Finish records the outcome of a run.
func (s *Store) Finish(ctx context.Context, id uuid.UUID, status constants.RunStatus, total, failed int, outputs []string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET status = ?, files_total = ?, files_failed = ?, outputs = ?, finished_at = ?
		 WHERE id = ?`,
		string(status), total, failed, strings.Join(outputs, "\n"),
		time.Now().UTC().Unix(), id.String(),
	)
	if err != nil {
		return common.NewAppError(common.CodeDatabase, "recording run finish", err)
	}
	s.logger.Info("store.run.finish", "run_id", id, "status", status, "files_total", total, "files_failed", failed)
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flow, input_dir, status, files_total, files_failed, outputs, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, common.NewAppError(common.CodeDatabase, "listing runs", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r        Run
			idStr    string
			outputs  string
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&idStr, &r.Flow, &r.InputDir, &r.Status,
			&r.FilesTotal, &r.FilesFailed, &outputs, &started, &finished); err != nil {
			return nil, common.NewAppError(common.CodeDatabase, "scanning run row", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, common.NewAppError(common.CodeDatabase,
				fmt.Sprintf("invalid run id %q", idStr), err)
		}
		r.ID = id
		if outputs != "" {
			r.Outputs = strings.Split(outputs, "\n")
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		if finished.Valid {
			t := time.Unix(finished.Int64, 0).UTC()
			r.FinishedAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
