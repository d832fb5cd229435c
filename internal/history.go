package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Resource kinds recorded in the history store.
const (
	HistoryDataset = "dataset"
	HistorySession = "session"
	HistoryUpload  = "upload"
)

// History is a local, non-authoritative log of resources this CLI created,
// so cleanup can find the most recent dataset/session without the caller
// pasting ids. The server remains the source of truth; every listing
// command still hits the API.
type History struct {
	db *sql.DB
}

// HistoryEntry is one recorded resource.
type HistoryEntry struct {
	ID        int64
	Kind      string
	RemoteID  string
	Name      string
	CreatedAt time.Time
}

// DefaultHistoryPath returns ~/.pdrill/history.db.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".pdrill", "history.db"), nil
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history database ping failed: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		remote_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores one created resource.
func (h *History) Record(kind, remoteID, name string) error {
	_, err := h.db.Exec(
		"INSERT INTO history (kind, remote_id, name, created_at) VALUES (?, ?, ?, ?)",
		kind, remoteID, name, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record history entry: %w", err)
	}
	return nil
}

// Recent returns the most recently recorded entries, newest first.
func (h *History) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		"SELECT id, kind, remote_id, name, created_at FROM history ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.RemoteID, &e.Name, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// LastByKind returns the most recently recorded entry of the given kind,
// or nil when none exists.
func (h *History) LastByKind(kind string) (*HistoryEntry, error) {
	row := h.db.QueryRow(
		"SELECT id, kind, remote_id, name, created_at FROM history WHERE kind = ? ORDER BY id DESC LIMIT 1",
		kind,
	)

	var e HistoryEntry
	err := row.Scan(&e.ID, &e.Kind, &e.RemoteID, &e.Name, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan history entry: %w", err)
	}
	return &e, nil
}

// Forget removes all entries pointing at the given remote id, used after a
// successful delete so --last does not resurrect dead resources.
func (h *History) Forget(remoteID string) error {
	if _, err := h.db.Exec("DELETE FROM history WHERE remote_id = ?", remoteID); err != nil {
		return fmt.Errorf("forget history entry: %w", err)
	}
	return nil
}
