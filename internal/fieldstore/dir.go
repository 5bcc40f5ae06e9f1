package fieldstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirBackend stores each field in its own <key>.txt file inside a directory.
type DirBackend struct {
	dir string
}

func NewDirBackend(dir string) (*DirBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache dir: %w", err)
	}
	return &DirBackend{dir: dir}, nil
}

func (b *DirBackend) path(key string) string {
	return filepath.Join(b.dir, key+".txt")
}

func (b *DirBackend) Load(key string) (string, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read field %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (b *DirBackend) Save(key, value string) error {
	if err := os.WriteFile(b.path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write field %s: %w", key, err)
	}
	return nil
}

// Clear deletes every regular file in the directory, not only known fields.
func (b *DirBackend) Clear() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("list cache dir: %w", err)
	}
	var errs []error
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
