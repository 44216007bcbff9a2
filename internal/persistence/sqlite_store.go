package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS translation_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	input_path TEXT NOT NULL,
	output_path TEXT NOT NULL,
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	cue_count INTEGER NOT NULL,
	char_count INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_input_target
	ON translation_runs (input_path, target_lang);`

// SQLiteStore persists translation run history
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordRun stores one completed run
func (s *SQLiteStore) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO translation_runs
		(input_path, output_path, source_lang, target_lang, cue_count, char_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.InputPath, run.OutputPath, run.SourceLanguage, run.TargetLanguage,
		run.CueCount, run.CharCount, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// HasRun reports whether a run for this input and target language exists
func (s *SQLiteStore) HasRun(ctx context.Context, inputPath, targetLang string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM translation_runs WHERE input_path = ? AND target_lang = ?`,
		inputPath, targetLang).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query run: %w", err)
	}
	return count > 0, nil
}

// RecentRuns returns up to limit runs, newest first
func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, input_path, output_path, source_lang, target_lang,
		cue_count, char_count, duration_ms, created_at
		FROM translation_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMs int64
		if err := rows.Scan(
			&run.ID, &run.InputPath, &run.OutputPath,
			&run.SourceLanguage, &run.TargetLanguage,
			&run.CueCount, &run.CharCount, &durationMs, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
