package runstore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subscore/internal/score"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases must be deleted and rebuilt.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates no run exists with the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one persisted comparison run.
type Run struct {
	RunID              string
	Episode            string
	SourceLabel        string
	ScriptLines        int
	MatchedLines       int
	CorpusAccuracy     float64
	MeanLineAccuracy   float64
	MedianLineAccuracy float64
	CreatedAt          time.Time
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the run database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveReport inserts a new run for the given episode and returns its ID.
func (s *Store) SaveReport(ctx context.Context, episode string, report score.AccuracyReport) (string, error) {
	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("acquire store lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, episode, source_label, script_lines, matched_lines,
            corpus_accuracy, mean_line_accuracy, median_line_accuracy,
            report_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		episode,
		report.SourceLabel,
		report.ScriptDialogueLines,
		report.MatchedLines,
		report.CorpusAccuracy,
		report.MeanLineAccuracy,
		report.MedianLineAccuracy,
		string(payload),
		createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// ListRuns returns saved runs, newest first. An empty episode lists all
// episodes.
func (s *Store) ListRuns(ctx context.Context, episode string) ([]Run, error) {
	query := `SELECT run_id, episode, source_label, script_lines, matched_lines,
        corpus_accuracy, mean_line_accuracy, median_line_accuracy, created_at
        FROM runs`
	args := []any{}
	if episode != "" {
		query += " WHERE episode = ?"
		args = append(args, episode)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run and its full report.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, score.AccuracyReport, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT run_id, episode, source_label, script_lines, matched_lines,
            corpus_accuracy, mean_line_accuracy, median_line_accuracy,
            created_at, report_json
        FROM runs WHERE run_id = ?`,
		runID,
	)

	var run Run
	var createdAt, payload string
	err := row.Scan(
		&run.RunID, &run.Episode, &run.SourceLabel,
		&run.ScriptLines, &run.MatchedLines,
		&run.CorpusAccuracy, &run.MeanLineAccuracy, &run.MedianLineAccuracy,
		&createdAt, &payload,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, score.AccuracyReport{}, ErrNotFound
	}
	if err != nil {
		return Run{}, score.AccuracyReport{}, fmt.Errorf("get run: %w", err)
	}
	run.CreatedAt = parseTimestamp(createdAt)

	var report score.AccuracyReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return Run{}, score.AccuracyReport{}, fmt.Errorf("decode report: %w", err)
	}
	return run, report, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(
		&run.RunID, &run.Episode, &run.SourceLabel,
		&run.ScriptLines, &run.MatchedLines,
		&run.CorpusAccuracy, &run.MeanLineAccuracy, &run.MedianLineAccuracy,
		&createdAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt = parseTimestamp(createdAt)
	return run, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
