package storage

import (
	"context"

	"github.com/courselens/courselens/core"
)

// Filter narrows chunk similarity search to a course and optionally a lesson.
// A zero Filter matches all chunks.
type Filter struct {
	// CourseTitle restricts results to chunks of the named course.
	// Must be an exact catalog title; empty means all courses.
	CourseTitle string

	// LessonNumber restricts results to chunks of one lesson.
	// Nil means all lessons.
	LessonNumber *int
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Clear removes all records owned by this repository.
	Clear(ctx context.Context) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CatalogRepository provides operations for course catalog entries.
// Entries are keyed by the content ID of the course title, so adding the
// same course twice overwrites rather than duplicates.
type CatalogRepository interface {
	Repository

	// AddCourse stores a catalog entry.
	// Sets InsertedAt timestamp if not already set.
	// Returns the entry with the timestamp populated.
	AddCourse(ctx context.Context, entry *core.CatalogEntry) (*core.CatalogEntry, error)

	// GetByTitle retrieves a catalog entry by its exact title.
	// Returns ErrNotFound if no such course exists.
	GetByTitle(ctx context.Context, title string) (*core.CatalogEntry, error)

	// ListTitles returns all course titles in the catalog.
	ListTitles(ctx context.Context) ([]string, error)

	// Count returns the number of courses in the catalog.
	Count(ctx context.Context) (int, error)

	// FindSimilar finds course titles similar to the given vector.
	// Results are ordered by similarity score (highest first), up to limit.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.ScoredTitle, error)

	// ForEach visits every catalog entry. Iteration stops at the first
	// error fn returns.
	ForEach(ctx context.Context, fn func(entry *core.CatalogEntry) error) error
}

// ChunkRepository provides operations for content chunks.
type ChunkRepository interface {
	Repository

	// AddChunks stores one or more chunks.
	// Sets InsertedAt timestamps if not already set.
	// Returns the chunks with timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves one chunk by its course title and sequence index.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, courseTitle string, sequenceIndex int) (*core.Chunk, error)

	// FindSimilar finds chunks similar to the given vector, restricted by
	// the filter. Results are ordered by similarity score (highest first),
	// up to limit.
	FindSimilar(ctx context.Context, vector []float32, filter Filter, limit int) ([]*core.ScoredChunk, error)

	// ForEach visits every stored chunk. Iteration stops at the first
	// error fn returns.
	ForEach(ctx context.Context, fn func(chunk *core.Chunk) error) error
}
