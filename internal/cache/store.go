package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS translations (
    key        TEXT PRIMARY KEY,
    model      TEXT NOT NULL,
    source     TEXT NOT NULL,
    target     TEXT NOT NULL,
    text       TEXT NOT NULL,
    translated TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Store manages translation persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the translation cache database under
// dir, creating the directory when missing.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "translations.db")
	db, err := sql.Open("sqlite", dbPath)
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
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key derives the cache key for a segment text under a given model and
// language pair.
func Key(model, source, target, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + source + "\x00" + target + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached translation for key, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var translated string
	err := s.db.QueryRowContext(ctx,
		`SELECT translated FROM translations WHERE key = ?`, key).Scan(&translated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}
	return translated, true, nil
}

// Put stores a translation, replacing any previous entry for the key.
func (s *Store) Put(ctx context.Context, key, model, source, target, text, translated string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (key, model, source, target, text, translated, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key, model, source, target, text, translated, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Count reports the number of cached translations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}
