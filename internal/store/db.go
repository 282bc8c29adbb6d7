// Package store persists small user settings in SQLite.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/photogeoview/internal/debug"
	"github.com/justyntemme/photogeoview/internal/logging"
)

// Setting keys used by the browser.
const (
	KeyLastFolder = "last_folder"
	KeyViewMode   = "view_mode"
	KeySortKey    = "sort_key"
	KeySortOrder  = "sort_order"
)

type DB struct {
	mu   sync.RWMutex
	conn *sql.DB
	log  *zap.Logger
}

// Open creates the database file and schema at dbPath.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps writes serialized.
	conn.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	} {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, err
		}
	}

	debug.Log(debug.STORE, "opened settings database %s", dbPath)
	return &DB{conn: conn, log: logging.Named("store")}, nil
}

// Get returns the stored value for key, or def when absent or unreadable.
func (d *DB) Get(key, def string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.conn == nil {
		return def
	}

	var value string
	err := d.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return def
	case err != nil:
		d.log.Warn("read setting", zap.String("key", key), zap.Error(err))
		return def
	}
	return value
}

// Set upserts key.
func (d *DB) Set(key, value string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.conn == nil {
		return sql.ErrConnDone
	}

	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		d.log.Warn("save setting", zap.String("key", key), zap.Error(err))
		return err
	}
	debug.Log(debug.STORE, "setting %s=%q", key, value)
	return nil
}

// All returns every stored setting.
func (d *DB) All() (map[string]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.conn == nil {
		return nil, sql.ErrConnDone
	}

	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
