package store

import (
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.Mutex
	docs map[string]string
}

// NewMemStore returns a MemStore seeded with the given documents.
func NewMemStore(docs map[string]string) *MemStore {
	copied := make(map[string]string, len(docs))
	for path, text := range docs {
		copied[path] = text
	}
	return &MemStore{docs: copied}
}

// Read returns the document at path, or ErrNotFound.
func (s *MemStore) Read(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return text, nil
}

// Write replaces an existing document, or returns ErrNotFound.
func (s *MemStore) Write(path, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	s.docs[path] = text
	return nil
}

// List returns all document paths, sorted.
func (s *MemStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.docs))
	for path := range s.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}
