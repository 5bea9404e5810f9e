package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-sqlite3"

	"github.com/robinbryce/tilemmr/tiles"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tiles (
	log_id  BLOB NOT NULL,
	id      INTEGER NOT NULL,
	version INTEGER NOT NULL,
	data    BLOB NOT NULL,
	PRIMARY KEY (log_id, id)
);

CREATE TABLE IF NOT EXISTS heads (
	log_id  BLOB PRIMARY KEY,
	head_id INTEGER NOT NULL
);
`

// SQLite is a tiles.Provider backed by a single SQLite database file,
// one row per (log, tile id). Compare-and-swap is a conditional UPDATE
// on the stored version; the head pointer is tracked in its own table
// since "the largest committed id" isn't knowable from the tiles table
// alone under concurrent writers racing to create successive tiles.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ReadTile(_ context.Context, log tiles.LogID, id uint64) ([]byte, string, error) {
	var data []byte
	var version int
	err := s.db.QueryRow(`SELECT data, version FROM tiles WHERE log_id = ? AND id = ?`, log.String(), id).
		Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", tiles.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("storage: read tile %d: %w", id, err)
	}
	return data, strconv.Itoa(version), nil
}

func (s *SQLite) ReadHead(ctx context.Context, log tiles.LogID) ([]byte, string, error) {
	var headID uint64
	err := s.db.QueryRow(`SELECT head_id FROM heads WHERE log_id = ?`, log.String()).Scan(&headID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", tiles.ErrEmpty
	}
	if err != nil {
		return nil, "", fmt.Errorf("storage: read head: %w", err)
	}
	return s.ReadTile(ctx, log, headID)
}

func (s *SQLite) CreateTile(_ context.Context, log tiles.LogID, id uint64, data []byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin create tile %d: %w", id, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO tiles (log_id, id, version, data) VALUES (?, ?, 0, ?)`, log.String(), id, data)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return tiles.ErrExists
		}
		return fmt.Errorf("storage: insert tile %d: %w", id, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO heads (log_id, head_id) VALUES (?, ?)
		ON CONFLICT(log_id) DO UPDATE SET head_id = excluded.head_id WHERE excluded.head_id >= heads.head_id`,
		log.String(), id,
	); err != nil {
		return fmt.Errorf("storage: advance head to %d: %w", id, err)
	}

	return tx.Commit()
}

func (s *SQLite) ReplaceTile(_ context.Context, log tiles.LogID, id uint64, version string, data []byte) error {
	wantVersion, err := strconv.Atoi(version)
	if err != nil {
		return fmt.Errorf("storage: malformed version %q: %w", version, err)
	}
	result, err := s.db.Exec(`
		UPDATE tiles SET data = ?, version = version + 1
		WHERE log_id = ? AND id = ? AND version = ?`,
		data, log.String(), id, wantVersion,
	)
	if err != nil {
		return fmt.Errorf("storage: replace tile %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: replace tile %d: %w", id, err)
	}
	if rows == 0 {
		if _, _, err := s.ReadTile(context.Background(), log, id); errors.Is(err, tiles.ErrNotFound) {
			return tiles.ErrNotFound
		}
		return tiles.ErrChanged
	}
	return nil
}

var _ tiles.Provider = (*SQLite)(nil)
