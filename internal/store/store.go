// Package store is the document store collaborator: read and write
// whole text documents by path and enumerate them. The model layer
// depends only on the Store interface; production uses DirStore over a
// directory of markdown files, tests use MemStore.
package store

import "errors"

// ErrNotFound is returned for reads and writes against a path that is
// not a document in the store. Callers that must treat a save against
// a vanished document as a no-op translate this error themselves.
var ErrNotFound = errors.New("document not found")

// Store reads and writes whole documents. Write replaces the entire
// file content in one operation; there are no partial writes.
type Store interface {
	// Read returns the full text of the document at path.
	Read(path string) (string, error)

	// Write replaces the document at path with text. Writing to an
	// unknown path fails with ErrNotFound; the store never creates
	// documents implicitly.
	Write(path, text string) error

	// List returns every document path in the store, in a
	// deterministic order.
	List() ([]string, error)
}
