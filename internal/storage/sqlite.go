// Package storage provides SQLite-based persistence for pet saves.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Saves are opaque JSON blobs addressed by a save key, which keeps the store
// a plain key/value backend. A separate journal table records notable game
// events per save key.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveInfo describes one stored save blob.
type SaveInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// JournalEntry is one recorded game event.
type JournalEntry struct {
	ID          int64     `csv:"id"`
	SaveKey     string    `csv:"save_key"`
	Kind        string    `csv:"kind"`
	Detail      string    `csv:"detail"`
	GameSeconds float64   `csv:"game_seconds"`
	CreatedAt   time.Time `csv:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			save_key TEXT NOT NULL,
			kind TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			game_seconds REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_journal_save_key ON journal(save_key, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the blob stored under key. ok is false if no blob exists.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM saves WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot read save %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous blob.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save %q: %w", key, err)
	}
	return nil
}

// Remove deletes the blob stored under key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot remove save %q: %w", key, err)
	}
	return nil
}

// Saves lists every stored save, most recently updated first.
func (s *Store) Saves() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT key, LENGTH(value), updated_at FROM saves ORDER BY updated_at DESC, key`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var infos []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.Key, &info.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTimestamp(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// AppendJournal records a game event and returns its ID.
func (s *Store) AppendJournal(saveKey, kind, detail string, gameSeconds float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO journal (save_key, kind, detail, game_seconds) VALUES (?, ?, ?, ?)",
		saveKey, kind, detail, gameSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot append journal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Journal returns events for saveKey in insertion order. limit <= 0 means all.
func (s *Store) Journal(saveKey string, limit int) ([]JournalEntry, error) {
	query := `SELECT id, save_key, kind, detail, game_seconds, created_at
		 FROM journal
		 WHERE save_key = ?
		 ORDER BY id`
	args := []any{saveKey}
	if limit > 0 {
		// Latest N, still returned oldest first.
		query = `SELECT * FROM (
			SELECT id, save_key, kind, detail, game_seconds, created_at
			FROM journal WHERE save_key = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SaveKey, &e.Kind, &e.Detail, &e.GameSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearJournal deletes all journal entries for saveKey.
func (s *Store) ClearJournal(saveKey string) error {
	if _, err := s.db.Exec("DELETE FROM journal WHERE save_key = ?", saveKey); err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
