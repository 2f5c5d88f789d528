package manifest

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"whisperbatch/internal/report"
)

// FileName is the manifest database written into each run folder.
const FileName = "_transcription.db"

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

// ErrExists is returned when the run folder already holds a manifest.
var ErrExists = errors.New("manifest already exists")

// Store is a per-run manifest backed by SQLite.
type Store struct {
	db    *sql.DB
	path  string
	runID string
	seq   int
	now   func() time.Time
}

// Create makes a new manifest in dir. An existing manifest is never reused.
func Create(ctx context.Context, dir string) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := store.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Open opens the manifest already written into dir and binds the store to the
// run recorded there.
func Open(ctx context.Context, dir string) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := db.QueryRowContext(ctx, "SELECT id FROM runs ORDER BY started_at DESC LIMIT 1").Scan(&store.runID); err != nil {
		_ = db.Close()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("open manifest %s: no run recorded", dbPath)
		}
		return nil, fmt.Errorf("read run id: %w", err)
	}
	return store, nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

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

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts the run row. It must be called once before Record.
func (s *Store) BeginRun(ctx context.Context, meta report.Meta) error {
	if meta.RunID == "" {
		return errors.New("begin run: empty run id")
	}
	started := meta.StartedAt
	if started.IsZero() {
		started = s.now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, version, started_at, input_dir, output_dir,
            engine_name, engine_version, model, device, language, hotwords
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID,
		meta.Version,
		started.UTC().Format(time.RFC3339Nano),
		meta.InputDir,
		meta.OutputDir,
		nullableString(meta.Engine.Name),
		nullableString(meta.Engine.Version),
		string(meta.Config.Tier),
		string(meta.Config.Device),
		meta.Config.Language,
		nullableString(meta.Config.Hotwords),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	s.runID = meta.RunID
	s.seq = 0
	return nil
}

// Record appends one outcome in arrival order.
func (s *Store) Record(ctx context.Context, o report.Outcome) error {
	if s.runID == "" {
		return errors.New("record outcome: run not started")
	}
	s.seq++
	var transcript, media, elapsed, speed, reason, category any
	if o.Kind == report.KindSuccess {
		transcript = o.TranscriptPath
		media = o.MediaSeconds
		elapsed = o.Elapsed.Milliseconds()
		speed = o.SpeedRatio
	} else {
		reason = o.Reason
		category = nullableString(o.Category)
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO outcomes (
            run_id, seq, kind, name, path, size_bytes, transcript_path,
            media_seconds, elapsed_ms, speed, reason, category, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID,
		s.seq,
		o.Kind.String(),
		o.File.Name,
		o.File.Path,
		o.File.Size,
		transcript,
		media,
		elapsed,
		speed,
		reason,
		category,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert outcome %s: %w", o.File.Name, err)
	}
	return nil
}

// FinishRun stores the run totals.
func (s *Store) FinishRun(ctx context.Context, r report.RunReport) error {
	if s.runID == "" {
		return errors.New("finish run: run not started")
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, run_seconds = ?, average_speed = ? WHERE id = ?`,
		s.now().UTC().Format(time.RFC3339Nano),
		r.RunElapsed.Seconds(),
		r.AverageSpeed,
		s.runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
