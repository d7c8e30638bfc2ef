package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courselens/courselens/ai"
	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/storage"
)

// defaultMaxResults bounds chunk searches when the caller passes no limit.
const defaultMaxResults = 5

// Query describes one content search.
type Query struct {
	// Text is the natural language search query.
	Text string

	// CourseName optionally restricts the search to one course. It may be
	// a partial or fuzzy reference; it is resolved against the catalog
	// before filtering.
	CourseName string

	// LessonNumber optionally restricts the search to one lesson.
	LessonNumber *int
}

// Index provides two-tier retrieval over indexed course material.
type Index struct {
	catalog    storage.CatalogRepository
	chunks     storage.ChunkRepository
	embedder   ai.Embedder
	maxResults int
	logger     *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// WithMaxResults sets the default result limit for Search.
func WithMaxResults(n int) Option {
	return func(i *Index) error {
		if n <= 0 {
			return fmt.Errorf("max results must be positive, got %d", n)
		}
		i.maxResults = n
		return nil
	}
}

// NewIndex creates a new retrieval index.
func NewIndex(
	catalog storage.CatalogRepository,
	chunks storage.ChunkRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Index, error) {
	if catalog == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	i := &Index{
		catalog:    catalog,
		chunks:     chunks,
		embedder:   embedder,
		maxResults: defaultMaxResults,
		logger:     slog.Default().With("component", "search-index"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// AddCourse indexes a course's catalog entry, embedding its title.
// Indexing the same course again overwrites the previous entry.
func (i *Index) AddCourse(ctx context.Context, course *core.Course) error {
	vector, err := i.embedder.EmbedText(ctx, course.Title)
	if err != nil {
		i.logger.Error("error embedding course title", "course", course.Title, "err", err)
		return err
	}

	entry := course.CatalogEntry()
	entry.Vector = vector

	_, err = i.catalog.AddCourse(ctx, entry)
	return err
}

// AddChunks indexes content chunks, embedding their contextualized text.
// The stored chunk keeps the raw text; only the embedding input carries
// the course and lesson context prefix.
func (i *Index) AddChunks(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for n, chunk := range chunks {
		texts[n] = chunk.ContextualText()
	}

	vectors, err := i.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		i.logger.Error("error embedding chunks", "count", len(chunks), "err", err)
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	for n, chunk := range chunks {
		chunk.Vector = vectors[n]
	}

	_, err = i.chunks.AddChunks(ctx, chunks...)
	return err
}

// HasCourse reports whether a course with the exact title is indexed.
func (i *Index) HasCourse(ctx context.Context, title string) (bool, error) {
	_, err := i.catalog.GetByTitle(ctx, title)
	if err == nil {
		return true, nil
	}
	if err == storage.ErrNotFound {
		return false, nil
	}
	return false, err
}

// ResolveCourseTitle resolves a possibly partial course name to the best
// matching catalog title. The best match wins regardless of how weak it
// is; resolution only fails when the catalog is empty.
func (i *Index) ResolveCourseTitle(ctx context.Context, name string) (string, error) {
	vector, err := i.embedder.EmbedText(ctx, name)
	if err != nil {
		return "", err
	}

	matches, err := i.catalog.FindSimilar(ctx, vector, 1)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q", ErrCourseNotFound, name)
	}

	i.logger.Debug("resolved course name",
		"requested", name,
		"resolved", matches[0].Title,
		"score", matches[0].Score)

	return matches[0].Title, nil
}

// Search finds the chunks most similar to the query text, restricted by
// the query's course and lesson filters. Returns up to limit results; a
// non-positive limit uses the index default.
func (i *Index) Search(ctx context.Context, query Query, limit int) ([]*core.ScoredChunk, error) {
	return i.SearchWithMonitor(ctx, query, limit, nil)
}

// SearchWithMonitor is Search with observation hooks.
// The monitor receives callbacks at each stage of the retrieval process.
func (i *Index) SearchWithMonitor(ctx context.Context, query Query, limit int, monitor Monitor) ([]*core.ScoredChunk, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if query.Text == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = i.maxResults
	}

	monitor.Start(query)

	// Resolve the course filter before touching the content collection.
	filter := storage.Filter{LessonNumber: query.LessonNumber}
	if query.CourseName != "" {
		resolved, err := i.ResolveCourseTitle(ctx, query.CourseName)
		if err != nil {
			return nil, err
		}
		filter.CourseTitle = resolved
		monitor.AfterCourseResolution(query.CourseName, resolved)
	}

	vector, err := i.embedder.EmbedText(ctx, query.Text)
	if err != nil {
		i.logger.Error("error embedding search query", "err", err)
		return nil, err
	}

	results, err := i.chunks.FindSimilar(ctx, vector, filter, limit)
	if err != nil {
		i.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	monitor.AfterChunkSearch(len(results))

	monitor.Finish(results)
	return results, nil
}

// CourseLink returns the link of the course with the exact title.
func (i *Index) CourseLink(ctx context.Context, title string) (string, error) {
	entry, err := i.catalog.GetByTitle(ctx, title)
	if err != nil {
		if err == storage.ErrNotFound {
			return "", fmt.Errorf("%w: %q", ErrCourseNotFound, title)
		}
		return "", err
	}
	return entry.CourseLink, nil
}

// LessonLink returns the link of one lesson of the course with the exact
// title. Returns an empty string without error when the lesson carries no
// link.
func (i *Index) LessonLink(ctx context.Context, title string, lessonNumber int) (string, error) {
	entry, err := i.catalog.GetByTitle(ctx, title)
	if err != nil {
		if err == storage.ErrNotFound {
			return "", fmt.Errorf("%w: %q", ErrCourseNotFound, title)
		}
		return "", err
	}

	link, ok := entry.LessonLink(lessonNumber)
	if !ok {
		return "", fmt.Errorf("%w: %q lesson %d", ErrLessonNotFound, title, lessonNumber)
	}
	return link, nil
}

// CourseCount returns the number of indexed courses.
func (i *Index) CourseCount(ctx context.Context) (int, error) {
	return i.catalog.Count(ctx)
}

// CourseTitles returns the titles of all indexed courses.
func (i *Index) CourseTitles(ctx context.Context) ([]string, error) {
	return i.catalog.ListTitles(ctx)
}

// Clear removes all indexed data from both collections.
func (i *Index) Clear(ctx context.Context) error {
	if err := i.catalog.Clear(ctx); err != nil {
		return err
	}
	return i.chunks.Clear(ctx)
}
