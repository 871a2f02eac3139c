package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"notepress/internal/tree"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a CLI run races the web server.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS slot (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) loadSQLite(ctx context.Context) *tree.Snapshot {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil
	}
	defer func() { _ = db.Close() }()

	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM slot WHERE key = ?`, slotKey).Scan(&value)
	if err != nil {
		// sql.ErrNoRows and real failures both fall back to the seed.
		return nil
	}
	var snap tree.Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return nil
	}
	return &snap
}

func (s Store) saveSQLite(ctx context.Context, snap *tree.Snapshot) error {
	if snap == nil {
		return errors.New("missing snapshot")
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, `INSERT INTO slot (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		slotKey, string(b), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}
