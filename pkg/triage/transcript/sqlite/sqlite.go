package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/triage/pkg/triage/transcript"
)

// sqliteStore implements transcript.Store using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite transcript database with WAL mode enabled,
// creating the schema if needed.
func Open(ctx context.Context, path string) (transcript.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS transcripts (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	summary TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transcripts_created_at ON transcripts(created_at);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Save stores a summary under a fresh ULID.
func (s *sqliteStore) Save(ctx context.Context, summary json.RawMessage) (transcript.Transcript, error) {
	t := transcript.Transcript{
		ID:        transcript.NewID(),
		CreatedAt: time.Now().UTC(),
		Summary:   summary,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transcripts (id, created_at, summary) VALUES (?, ?, ?)",
		t.ID, t.CreatedAt.Format(time.RFC3339Nano), string(summary))
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("save transcript: %w", err)
	}
	return t, nil
}

// Get returns a transcript by id.
func (s *sqliteStore) Get(ctx context.Context, id string) (transcript.Transcript, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, created_at, summary FROM transcripts WHERE id = ?", id)

	t, err := scanTranscript(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return transcript.Transcript{}, false, nil
	}
	if err != nil {
		return transcript.Transcript{}, false, err
	}
	return t, true, nil
}

// Recent returns the newest transcripts, newest first.
func (s *sqliteStore) Recent(ctx context.Context, limit int) ([]transcript.Transcript, error) {
	if limit <= 0 {
		limit = 20
	}

	// rowid preserves insertion order even when timestamps collide.
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, summary FROM transcripts ORDER BY rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []transcript.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTranscript(scan func(dest ...any) error) (transcript.Transcript, error) {
	var t transcript.Transcript
	var createdAt, summary string

	if err := scan(&t.ID, &createdAt, &summary); err != nil {
		return transcript.Transcript{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("parse created_at: %w", err)
	}
	t.CreatedAt = ts
	t.Summary = json.RawMessage(summary)
	return t, nil
}
