// Package progress remembers where each document was left off so reading can
// resume, and keeps a short history of reading sessions.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"corrodedrsvp/internal/logging"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBName is the database file created inside the data directory.
const DBName = "progress.db"

// ErrNotFound is returned when no entry matches.
var ErrNotFound = errors.New("progress entry not found")

// Entry is the saved position for one document.
type Entry struct {
	DocumentID uuid.UUID
	Name       string
	Index      int
	Total      int
	WPM        int
	UpdatedAt  time.Time
}

// Done reports whether the document was read to the end.
func (e Entry) Done() bool {
	return e.Total > 0 && e.Index >= e.Total
}

// Session is one run of the reader over a document.
type Session struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	StartedAt  time.Time
	EndedAt    time.Time
	WordsRead  int
}

// Store manages the progress database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
	now    func() time.Time
}

// Open creates or opens the progress store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dbPath := filepath.Join(dir, DBName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: dbPath, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logging.Progress("opened progress store at %s", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS positions (
		document_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		word_index INTEGER NOT NULL,
		total INTEGER NOT NULL,
		wpm INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated_at);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		ended_at INTEGER,
		words_read INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_document ON sessions(document_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save upserts the position for e.DocumentID. A zero UpdatedAt is stamped
// with the current time.
func (s *Store) Save(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (document_id, name, word_index, total, wpm, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			name = excluded.name,
			word_index = excluded.word_index,
			total = excluded.total,
			wpm = excluded.wpm,
			updated_at = excluded.updated_at`,
		e.DocumentID.String(), e.Name, e.Index, e.Total, e.WPM, e.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

// Get returns the saved position for id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT document_id, name, word_index, total, wpm, updated_at
		FROM positions WHERE document_id = ?`, id.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// List returns saved positions, most recently updated first. limit <= 0
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, name, word_index, total, wpm, updated_at
		FROM positions ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Find resolves a document ID prefix, as typed by a user, to one entry.
func (s *Store) Find(ctx context.Context, prefix string) (Entry, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return Entry{}, ErrNotFound
	}
	entries, err := s.List(ctx, 0)
	if err != nil {
		return Entry{}, err
	}
	var match []Entry
	for _, e := range entries {
		if strings.HasPrefix(e.DocumentID.String(), prefix) {
			match = append(match, e)
		}
	}
	switch len(match) {
	case 0:
		return Entry{}, ErrNotFound
	case 1:
		return match[0], nil
	default:
		return Entry{}, fmt.Errorf("prefix %q matches %d documents", prefix, len(match))
	}
}

// Delete removes the saved position and sessions for id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM positions WHERE document_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE document_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// Clear removes every position and session.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM positions; DELETE FROM sessions;`); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

// BeginSession records the start of a reading session.
func (s *Store) BeginSession(ctx context.Context, docID uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, document_id, started_at) VALUES (?, ?, ?)`,
		id.String(), docID.String(), s.now().UnixMilli())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin session: %w", err)
	}
	return id, nil
}

// EndSession stamps the end time and word count of a session.
func (s *Store) EndSession(ctx context.Context, id uuid.UUID, wordsRead int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, words_read = ? WHERE id = ?`,
		s.now().UnixMilli(), wordsRead, id.String())
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Sessions lists the sessions for a document, newest first.
func (s *Store) Sessions(ctx context.Context, docID uuid.UUID) ([]Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, started_at, ended_at, words_read
		FROM sessions WHERE document_id = ? ORDER BY started_at DESC`, docID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			id, doc   string
			started   int64
			ended     sql.NullInt64
			wordsRead int
		)
		if err := rows.Scan(&id, &doc, &started, &ended, &wordsRead); err != nil {
			return nil, err
		}
		sess := Session{
			ID:         uuid.MustParse(id),
			DocumentID: uuid.MustParse(doc),
			StartedAt:  time.UnixMilli(started),
			WordsRead:  wordsRead,
		}
		if ended.Valid {
			sess.EndedAt = time.UnixMilli(ended.Int64)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		id      string
		e       Entry
		updated int64
	)
	if err := row.Scan(&id, &e.Name, &e.Index, &e.Total, &e.WPM, &updated); err != nil {
		return Entry{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt document id %q: %w", id, err)
	}
	e.DocumentID = parsed
	e.UpdatedAt = time.UnixMilli(updated)
	return e, nil
}
