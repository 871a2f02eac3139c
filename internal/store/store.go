package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notepress/internal/tree"
)

const (
	slotFileName   = "blog.json"
	sqliteFileName = "blog.sqlite"

	// slotKey is the single string key the snapshot lives under in the
	// SQLite backend (the JSON backend's key is the file name itself).
	slotKey = "blog_v1"
)

// Storage backend selection.
//
// Default: the JSON file slot (blog.json).
// Opt-in: set NOTEPRESS_STORAGE=sqlite to keep the slot in SQLite instead.
const envStorageBackend = "NOTEPRESS_STORAGE"

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Store mirrors the in-memory tree to a single local slot. The snapshot in
// memory is the source of truth for a session; the slot is a best-effort
// mirror, so Load never fails (it falls back to the seeded tree) and callers
// are free to discard Save errors.
type Store struct {
	Dir string
}

func getenv(k string) string { return os.Getenv(k) }

// DiscoverDir walks up from start looking for an existing .notepress dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".notepress")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store dir: a discovered project-local .notepress
// ancestor wins, otherwise ~/.notepress.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(cwd, ".notepress"), nil
	}
	return filepath.Join(home, ".notepress"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) slotPath() string {
	return filepath.Join(s.Dir, slotFileName)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) backend() Backend {
	switch Backend(strings.ToLower(strings.TrimSpace(getenv(envStorageBackend)))) {
	case BackendJSON:
		return BackendJSON
	case BackendSQLite:
		return BackendSQLite
	default:
		// Auto-detect: an existing SQLite slot keeps winning; otherwise the
		// JSON file is the default.
		if _, err := os.Stat(s.sqlitePath()); err == nil {
			return BackendSQLite
		}
		return BackendJSON
	}
}

// Load reads the persisted snapshot. A missing, unreadable, or corrupt slot
// yields the seeded default tree; storage trouble never propagates as an
// error.
func (s Store) Load() *tree.Snapshot {
	var snap *tree.Snapshot
	switch s.backend() {
	case BackendSQLite:
		snap = s.loadSQLite(context.Background())
	default:
		snap = s.loadJSON()
	}
	if snap == nil {
		snap = tree.Seed()
		snap.Normalize()
		// First load: mirror the seed right away so the generated ids stay
		// stable across processes. Best-effort like every other slot write.
		_ = s.Save(snap)
		return snap
	}
	snap.Normalize()
	return snap
}

// Save mirrors the snapshot to the slot. Callers typically discard the error:
// a full disk or unwritable dir leaves the session in-memory-only.
func (s Store) Save(snap *tree.Snapshot) error {
	if snap == nil {
		return nil
	}
	switch s.backend() {
	case BackendSQLite:
		return s.saveSQLite(context.Background(), snap)
	default:
		return s.saveJSON(snap)
	}
}

func (s Store) loadJSON() *tree.Snapshot {
	b, err := os.ReadFile(s.slotPath())
	if err != nil {
		return nil
	}
	var snap tree.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil
	}
	return &snap
}

func (s Store) saveJSON(snap *tree.Snapshot) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.slotPath(), append(b, '\n'), 0o644)
}

// SlotModTime reports when the slot was last written, for cheap
// changed-on-disk checks (the TUI reload loop). Zero time when unknown.
func (s Store) SlotModTime() time.Time {
	path := s.slotPath()
	if s.backend() == BackendSQLite {
		path = s.sqlitePath()
	}
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
