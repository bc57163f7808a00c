package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BlobStore is the persistence collaborator: it holds the entire serialized
// history collection as one blob. The blob is read once at startup and
// fully overwritten on every mutation.
type BlobStore interface {
	// Read returns the persisted blob. A store that has never been written
	// returns an error wrapping fs.ErrNotExist.
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}

// FileStore persists the history blob as a single JSON file in the data
// directory.
type FileStore struct {
	path string
}

// NewFileStore creates the data directory if needed (0700 - user-only
// access) and returns a store backed by history.json inside it.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, "history.json")}, nil
}

func (s *FileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no history blob at %s: %w", s.path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read history blob: %w", err)
	}
	return data, nil
}

func (s *FileStore) Write(data []byte) error {
	// 0600 - conversation history is sensitive
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write history blob: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
