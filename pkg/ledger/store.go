package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dtnitsch/helpcenter-sync/models"
)

// FileStore keeps the ledger as a single pretty-printed JSON file. A
// missing file means a first run and loads as an empty ledger. Save
// rewrites the whole file; it is called exactly once, at end of run.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (models.Ledger, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return models.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var l models.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse ledger: %w", err)
	}
	return l, nil
}

func (s *FileStore) Save(l models.Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	Ledger models.Ledger
	Saved  int
}

func NewMemStore() *MemStore {
	return &MemStore{Ledger: models.Ledger{}}
}

func (s *MemStore) Load() (models.Ledger, error) {
	l := models.Ledger{}
	for k, v := range s.Ledger {
		l[k] = v
	}
	return l, nil
}

func (s *MemStore) Save(l models.Ledger) error {
	s.Ledger = l
	s.Saved++
	return nil
}
