package badger

import (
	"context"
	"slices"
	"time"

	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	return &ChunkRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ChunkRepository has no resources to release.
func (r *ChunkRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks stores one or more chunks keyed by (course, sequence index).
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, chunk := range chunks {
			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = now
			}

			key := makeChunkKey(core.CourseID(chunk.CourseTitle), chunk.SequenceIndex)
			value := storage.MarshalChunk(chunk)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunk retrieves one chunk by its course title and sequence index.
func (r *ChunkRepository) GetChunk(ctx context.Context, courseTitle string, sequenceIndex int) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(core.CourseID(courseTitle), sequenceIndex)
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalChunk(val)
			return err
		})
	}, false)
	return result, err
}

// FindSimilar finds chunks similar to the given vector, restricted by the
// filter. When a course filter is set the scan covers only that course's
// key range; the lesson filter is checked per chunk.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, filter storage.Filter, limit int) ([]*core.ScoredChunk, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	prefix := []byte(chunkRecordPrefix + ":")
	if filter.CourseTitle != "" {
		prefix = makePartialChunkKey(core.CourseID(filter.CourseTitle))
	}

	var results []*core.ScoredChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var chunk *core.Chunk
			err := item.Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			if filter.LessonNumber != nil {
				if chunk.LessonNumber == nil || *chunk.LessonNumber != *filter.LessonNumber {
					continue
				}
			}

			results = append(results, &core.ScoredChunk{
				Chunk: chunk,
				Score: dotProduct(vector, chunk.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.ScoredChunk) int {
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

// Clear removes all chunks.
func (r *ChunkRepository) Clear(ctx context.Context) error {
	return r.backend.DropPrefix([]byte(chunkRecordPrefix + ":"))
}

// ForEach scans all chunks within a read transaction.
func (r *ChunkRepository) ForEach(ctx context.Context, fn func(chunk *core.Chunk) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var chunk *core.Chunk
			err := item.Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if chunk == nil {
				continue
			}
			if err := fn(chunk); err != nil {
				return err
			}
		}
		return nil
	}, false)
}
