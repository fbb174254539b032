// Package file persists projects as pretty-printed JSON files.
//
// Saving over an existing file first copies it to a sibling backup with the
// ".bak" suffix, then writes the new content through a temporary file and an
// atomic rename.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
)

// Extension is the double suffix of project files.
const Extension = ".wf.json"

// BackupSuffix is appended to a project path to form its backup path.
const BackupSuffix = ".bak"

// Store implements ports.ProjectStore over a directory of project files.
type Store struct {
	dir string
}

// New creates a store rooted at dir. An empty dir means ".wireframe/projects".
func New(dir string) *Store {
	if dir == "" {
		dir = filepath.Join(".wireframe", "projects")
	}
	return &Store{dir: dir}
}

// Dir returns the directory projects are stored in.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: invalid project id %q", domain.ErrPersistence, id)
	}
	return filepath.Join(s.dir, id+Extension), nil
}

// Save persists the project to <dir>/<id>.wf.json.
func (s *Store) Save(ctx context.Context, id string, project *domain.Project) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", domain.ErrPersistence, err)
	}
	return SaveFile(path, project)
}

// Load retrieves the project from <dir>/<id>.wf.json.
func (s *Store) Load(ctx context.Context, id string) (*domain.Project, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// Delete removes the project file and its backup.
func (s *Store) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	for _, p := range []string{path, path + BackupSuffix} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: failed to delete %s: %v", domain.ErrPersistence, p, err)
		}
	}
	return nil
}

// List returns the ids of the project files in the directory, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %v", domain.ErrPersistence, s.dir, err)
	}
	ids := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, Extension))
	}
	sort.Strings(ids)
	return ids, nil
}

// SaveFile writes project to path. An existing file is first copied to
// path+".bak"; a failed backup aborts the save.
func SaveFile(path string, project *domain.Project) error {
	data, err := document.Encode(project)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := backup(path); err != nil {
		return fmt.Errorf("%w: failed to back up %s: %v", domain.ErrPersistence, path, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", domain.ErrPersistence, path, err)
	}
	return nil
}

// LoadFile reads, migrates and decodes the project at path.
// A missing file yields domain.ErrProjectNotFound.
func LoadFile(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrPersistence, path, err)
	}
	project, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrPersistence, path, err)
	}
	return project, nil
}

func backup(path string) error {
	src, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path + BackupSuffix)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
