package badger

import (
	"github.com/courselens/courselens/storage"
)

// Repositories bundles the catalog and chunk repositories that share one
// BadgerDB backend. Close closes the shared backend.
type Repositories struct {
	Catalog storage.CatalogRepository
	Chunks  storage.ChunkRepository

	backend *Backend
}

// Close closes the shared backend.
func (r *Repositories) Close() error {
	return r.backend.Close()
}

// NewRepositories opens a BadgerDB database at the given path and returns
// catalog and chunk repositories sharing that backend.
func NewRepositories(path string) (*Repositories, error) {
	return newRepositories(path, false)
}

// NewMemoryRepositories creates repositories over an in-memory BadgerDB.
// Intended for tests; data is lost when the bundle is closed.
func NewMemoryRepositories() (*Repositories, error) {
	return newRepositories("", true)
}

func newRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	catalog, err := NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	chunks, err := NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Catalog: catalog,
		Chunks:  chunks,
		backend: backend,
	}, nil
}
