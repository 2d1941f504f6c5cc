package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileDocumentStore keeps the document in a single JSON file. The first
// read seeds the file with an empty document so a fresh deployment serves
// a well-formed payload.
type FileDocumentStore struct {
	path string
}

// NewFileDocumentStore creates the parent directory if needed.
func NewFileDocumentStore(path string) (*FileDocumentStore, error) {
	if path == "" {
		return nil, errors.New("file store: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("file store: create dir: %w", err)
		}
	}
	return &FileDocumentStore{path: path}, nil
}

func (s *FileDocumentStore) Load() (json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := emptyDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read: %w", err)
	}
	return data, nil
}

func (s *FileDocumentStore) Save(payload json.RawMessage) error {
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("file store: write: %w", err)
	}
	return nil
}
