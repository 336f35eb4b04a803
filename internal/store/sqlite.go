// Package store persists the prompt stash: drafts set aside from the editor
// and restored later, possibly in another session.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/sqlite"

	"github.com/young1lin/powerline-footer/internal/logging"
)

var storeLog = logging.ForComponent(logging.CompStore)

var (
	// ErrEmpty is returned by Pop when nothing is stashed.
	ErrEmpty = errors.New("stash is empty")
	// ErrNotFound is returned for an unknown stash id.
	ErrNotFound = errors.New("stash entry not found")
	// ErrBlank is returned when saving whitespace-only text.
	ErrBlank = errors.New("nothing to stash")
)

// Entry is one stashed prompt.
type Entry struct {
	ID        int64
	Text      string
	Cwd       string
	SessionID string
	CreatedAt time.Time
}

// Title is the first line of the prompt.
func (e Entry) Title() string {
	line, _, _ := strings.Cut(strings.TrimSpace(e.Text), "\n")
	return line
}

// DB wraps the SQLite connection.
type DB struct {
	*sql.DB
	now func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// Open opens the database at path and creates the schema if needed.
func Open(path string, opts ...Option) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer; concurrent commands from separate processes use WAL.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	db := &DB{DB: sqlDB, now: time.Now}
	for _, opt := range opts {
		opt(db)
	}
	if err := db.createTables(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return db, nil
}

func (db *DB) createTables() error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS stash (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		cwd TEXT NOT NULL DEFAULT '',
		session_id TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stash_created ON stash(created_at DESC, id DESC);
	`)
	return err
}

// Save stashes a prompt and returns the stored entry.
func (db *DB) Save(text, cwd, sessionID string) (Entry, error) {
	if strings.TrimSpace(text) == "" {
		return Entry{}, ErrBlank
	}
	created := db.now()
	res, err := db.Exec(
		`INSERT INTO stash (text, cwd, session_id, created_at) VALUES (?, ?, ?, ?)`,
		text, cwd, sessionID, created.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("save stash: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}
	storeLog.Debug("stashed", "id", id, "bytes", len(text))
	return Entry{ID: id, Text: text, Cwd: cwd, SessionID: sessionID, CreatedAt: time.UnixMilli(created.UnixMilli())}, nil
}

const selectEntry = `SELECT id, text, cwd, session_id, created_at FROM stash`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	var ms int64
	if err := row.Scan(&e.ID, &e.Text, &e.Cwd, &e.SessionID, &ms); err != nil {
		return Entry{}, err
	}
	e.CreatedAt = time.UnixMilli(ms)
	return e, nil
}

// List returns stashed prompts, newest first. limit <= 0 returns all.
func (db *DB) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(selectEntry+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list stash: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry.
func (db *DB) Get(id int64) (Entry, error) {
	e, err := scanEntry(db.QueryRow(selectEntry+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// Pop removes and returns the newest entry.
func (db *DB) Pop() (Entry, error) {
	tx, err := db.Begin()
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	e, err := scanEntry(tx.QueryRow(selectEntry + ` ORDER BY created_at DESC, id DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrEmpty
	}
	if err != nil {
		return Entry{}, err
	}
	if _, err := tx.Exec(`DELETE FROM stash WHERE id = ?`, e.ID); err != nil {
		return Entry{}, err
	}
	return e, tx.Commit()
}

// Drop deletes one entry.
func (db *DB) Drop(id int64) error {
	res, err := db.Exec(`DELETE FROM stash WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("drop stash %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear deletes every entry and returns how many were removed.
func (db *DB) Clear() (int64, error) {
	res, err := db.Exec(`DELETE FROM stash`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
