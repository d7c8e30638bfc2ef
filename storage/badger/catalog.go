package badger

import (
	"context"
	"slices"
	"time"

	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/storage"
	"github.com/dgraph-io/badger/v4"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	return &CatalogRepository{
		backend: backend,
	}, nil
}

// Close releases resources. CatalogRepository has no resources to release.
func (r *CatalogRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCourse stores a catalog entry keyed by the content ID of its title.
// Re-adding the same course overwrites the stored entry.
func (r *CatalogRepository) AddCourse(ctx context.Context, entry *core.CatalogEntry) (*core.CatalogEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if entry.InsertedAt.IsZero() {
			entry.InsertedAt = time.Now().UTC()
		}

		key := makeCatalogKey(core.CourseID(entry.Title))
		value := storage.MarshalCatalogEntry(entry)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return entry, err
}

// GetByTitle retrieves a catalog entry by its exact title.
func (r *CatalogRepository) GetByTitle(ctx context.Context, title string) (*core.CatalogEntry, error) {
	var result *core.CatalogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCatalogKey(core.CourseID(title))
		var err error
		result, err = readCatalogEntry(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListTitles returns all course titles in the catalog.
func (r *CatalogRepository) ListTitles(ctx context.Context) ([]string, error) {
	var titles []string
	err := r.ForEach(ctx, func(entry *core.CatalogEntry) error {
		titles = append(titles, entry.Title)
		return nil
	})
	return titles, err
}

// Count returns the number of courses in the catalog.
func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.ForEach(ctx, func(*core.CatalogEntry) error {
		count++
		return nil
	})
	return count, err
}

// FindSimilar finds course titles similar to the given vector.
// The catalog is small, so a full scan with brute-force scoring is fine.
func (r *CatalogRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.ScoredTitle, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ScoredTitle
	err := r.ForEach(ctx, func(entry *core.CatalogEntry) error {
		if len(entry.Vector) == 0 {
			return nil
		}
		results = append(results, &core.ScoredTitle{
			Title: entry.Title,
			Score: dotProduct(vector, entry.Vector),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.ScoredTitle) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// Clear removes all catalog entries.
func (r *CatalogRepository) Clear(ctx context.Context) error {
	return r.backend.DropPrefix([]byte(catalogRecordPrefix + ":"))
}

// ForEach scans all catalog entries within a read transaction.
func (r *CatalogRepository) ForEach(ctx context.Context, fn func(entry *core.CatalogEntry) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(catalogRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var entry *core.CatalogEntry
			err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalCatalogEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil {
				continue
			}
			if err := fn(entry); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// readCatalogEntry reads a catalog entry from the transaction.
func readCatalogEntry(tx *badger.Txn, key []byte) (*core.CatalogEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.CatalogEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalCatalogEntry(val)
		return err
	})
	return entry, err
}
