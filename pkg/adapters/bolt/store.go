// Package bolt provides a ports.ProjectStore backed by a single bbolt file.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	bolt "go.etcd.io/bbolt"
)

const bucketProjects = "projects"

// OpenTimeout bounds how long Open waits for the file lock.
const OpenTimeout = time.Second

// Store keeps one JSON document per project in the "projects" bucket.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrPersistence, path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketProjects))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init %s: %v", domain.ErrPersistence, path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the project.
func (s *Store) Save(ctx context.Context, id string, project *domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := document.Encode(project)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketProjects)).Put([]byte(id), data)
	})
	if err != nil {
		return fmt.Errorf("%w: bolt save: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Load retrieves the project.
func (s *Store) Load(ctx context.Context, id string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketProjects)).Get([]byte(id))
		if v == nil {
			return domain.ErrProjectNotFound
		}
		// v is only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: bolt load: %v", domain.ErrPersistence, err)
	}
	project, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return project, nil
}

// Delete removes the project. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketProjects)).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("%w: bolt delete: %v", domain.ErrPersistence, err)
	}
	return nil
}

// List returns the stored ids in key order, which is sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketProjects)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			ids = append(ids, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: bolt list: %v", domain.ErrPersistence, err)
	}
	return ids, nil
}
