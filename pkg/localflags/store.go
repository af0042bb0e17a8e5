// Package localflags persists small per-user settings, such as the theme and
// the last dismissed notice, in a SQLite key-value table.
package localflags

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	KeyTheme          = "theme"
	KeyLastNoticeDate = "last_notice_date"
)

const schema = `
CREATE TABLE IF NOT EXISTS flags (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Flag is one stored entry.
type Flag struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the flags database at path. ":memory:" is
// accepted for a throwaway store.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		dsn = "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key and whether it was set.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowx(`SELECT value FROM flags WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
	INSERT INTO flags (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM flags WHERE key=?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// All returns every stored flag ordered by key.
func (s *Store) All() ([]Flag, error) {
	var flags []Flag
	if err := s.db.Select(&flags, `SELECT key, value FROM flags ORDER BY key`); err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	return flags, nil
}

// LastNoticeDate returns the date of the last dismissed notice, or "".
func (s *Store) LastNoticeDate() (string, error) {
	v, _, err := s.Get(KeyLastNoticeDate)
	return v, err
}

func (s *Store) SetLastNoticeDate(date string) error {
	return s.Set(KeyLastNoticeDate, date)
}
