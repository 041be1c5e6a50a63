package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/platform/logger"
)

// SQLiteStore keeps sheets in a "characters" table, one JSON document per row.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) <dir>/bloodline.sqlite and its schema.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "bloodline.sqlite"))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS characters (
		slug TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		id TEXT NOT NULL,
		clan TEXT,
		document TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(c *engine.Character) error {
	key, err := keyOf(c)
	if err != nil {
		return err
	}
	data, err := encode(c)
	if err != nil {
		return err
	}

	updated := c.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err = s.db.Exec(`INSERT INTO characters (slug, name, id, clan, document, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			id = excluded.id,
			clan = excluded.clan,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		key, c.Concept.Name, c.ID, c.Concept.Clan, string(data), updated.UTC())
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", c.Concept.Name, err)
	}
	logger.Log.Debugf("saved %s to sqlite", key)
	return nil
}

func (s *SQLiteStore) Load(name string) (*engine.Character, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM characters WHERE slug = ?`, Slug(name)).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", name, err)
	}
	return decode([]byte(doc))
}

func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM characters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM characters WHERE slug = ?`, Slug(name))
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
