// Package sqlite provides a ports.ProjectStore backed by SQLite through the
// pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	_ "modernc.org/sqlite"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS projects (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	schema_version TEXT NOT NULL,
	document       BLOB NOT NULL,
	updated_at     TEXT NOT NULL
)`

const upsertSQL = `
INSERT INTO projects (id, name, schema_version, document, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	schema_version = excluded.schema_version,
	document = excluded.document,
	updated_at = excluded.updated_at`

// Store keeps one row per project.
type Store struct {
	db *sql.DB
}

// Open opens the database named by dsn (a file path or ":memory:") and
// creates the projects table if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrPersistence, dsn, err)
	}
	// A single connection keeps ":memory:" databases shared and avoids
	// SQLITE_BUSY between writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate %s: %v", domain.ErrPersistence, dsn, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the project row.
func (s *Store) Save(ctx context.Context, id string, project *domain.Project) error {
	data, err := document.Encode(project)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	_, err = s.db.ExecContext(ctx, upsertSQL,
		id, project.Name, document.SchemaVersion, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: sqlite save: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Load retrieves the project.
func (s *Store) Load(ctx context.Context, id string) (*domain.Project, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM projects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite load: %v", domain.ErrPersistence, err)
	}
	project, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return project, nil
}

// Delete removes the project row.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: sqlite delete: %v", domain.ErrPersistence, err)
	}
	return nil
}

// List returns the ids of all rows, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite list: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: sqlite list: %v", domain.ErrPersistence, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sqlite list: %v", domain.ErrPersistence, err)
	}
	return ids, nil
}

// Updated reports when the project row was last written.
func (s *Store) Updated(ctx context.Context, id string) (time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM projects WHERE id = ?`, id).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, domain.ErrProjectNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: sqlite updated: %v", domain.ErrPersistence, err)
	}
	return time.Parse(time.RFC3339Nano, stamp)
}
