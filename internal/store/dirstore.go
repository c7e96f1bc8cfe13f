package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirStore is a Store over a directory tree of markdown documents.
// Paths are slash-separated and relative to the root.
type DirStore struct {
	root string
}

// NewDirStore returns a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Root returns the store's root directory.
func (s *DirStore) Root() string {
	return s.root
}

// resolve maps a store path to a filesystem path, rejecting anything
// that would escape the root.
func (s *DirStore) resolve(path string) (string, error) {
	path = filepath.FromSlash(path)
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("path %q escapes store root", path)
	}
	return filepath.Join(s.root, path), nil
}

// Read returns the full text of the document at path. An unknown path
// is ErrNotFound.
func (s *DirStore) Read(path string) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// Write atomically replaces the document at path: the new text goes to
// a temporary file first, then renames over the original. Writing to a
// path that is not an existing document is ErrNotFound.
func (s *DirStore) Write(path, text string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, full)
}

// List returns the store paths of every markdown document under the
// root, sorted.
func (s *DirStore) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
