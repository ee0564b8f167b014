package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/arrivaldo/code-challenge-backend/models"
)

// FileRecordStore keeps the whole document in a single JSON file. Saves
// write to a temp file in the same directory and rename it over the old
// one, so a crash mid-write never leaves the store unparseable. A mutex
// serializes writers within the process.
type FileRecordStore struct {
	path string
	mu   sync.Mutex
}

func NewFileRecordStore(path string) *FileRecordStore {
	return &FileRecordStore{path: path}
}

func (s *FileRecordStore) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileRecordStore) read() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStorageUnavailable, s.path, err)
	}

	doc := models.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return doc, nil
}

func (s *FileRecordStore) Save(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	if current.Version != doc.Version {
		return ErrVersionConflict
	}

	next := *doc
	next.Version = doc.Version + 1
	data, err := json.MarshalIndent(&next, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStorageUnavailable, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", ErrStorageUnavailable, s.path, err)
	}

	doc.Version = next.Version
	return nil
}
