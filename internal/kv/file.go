package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore saves each key as a JSON file under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Get reads the value for a key.
func (f *FileStore) Get(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return data, true, nil
}

// Set writes the value for a key. The write is not atomic; a crash
// mid-write can leave a truncated file, which readers degrade on.
func (f *FileStore) Set(name string, value []byte) error {
	if err := os.WriteFile(f.path(name), value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Delete removes a key; missing files are ignored.
func (f *FileStore) Delete(name string) error {
	err := os.Remove(f.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.basePath, safeKey(name)+".json")
}

func safeKey(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "key"
	}
	return name
}
