package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSaveDir is where FileStore keeps records unless configured otherwise.
const DefaultSaveDir = ".saves"

// FileStore keeps each record in <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// the first Save.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid record name %q", name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

func (s *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Save writes to a temporary file first so a crash never leaves a
// truncated record behind.
func (s *FileStore) Save(_ context.Context, name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Close() error {
	return nil
}
