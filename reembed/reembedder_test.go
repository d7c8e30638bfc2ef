package reembed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/courselens/courselens/ai/mock"
	"github.com/courselens/courselens/core"
	badgerstore "github.com/courselens/courselens/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) *badgerstore.Repositories {
	t.Helper()
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repos.Close())
	})
	return repos
}

func seedIndex(t *testing.T, repos *badgerstore.Repositories, chunkCount int) {
	t.Helper()
	ctx := context.Background()

	staleVector := []float32{1, 0, 0}

	_, err := repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
		Title:  "Course A",
		Vector: staleVector,
	})
	require.NoError(t, err)

	lesson := 1
	chunks := make([]*core.Chunk, chunkCount)
	for i := range chunks {
		chunks[i] = &core.Chunk{
			CourseTitle:   "Course A",
			LessonNumber:  &lesson,
			SequenceIndex: i,
			Text:          "chunk body",
			Vector:        staleVector,
		}
	}
	_, err = repos.Chunks.AddChunks(ctx, chunks...)
	require.NoError(t, err)
}

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}
}

func TestNewReembedderValidation(t *testing.T) {
	repos := setupRepos(t)
	embedder := mock.NewEmbedder()

	t.Run("MissingCatalog", func(t *testing.T) {
		_, err := NewReembedder(nil, repos.Chunks, embedder, nil, &strings.Builder{})
		assert.ErrorIs(t, err, ErrCatalogRepositoryRequired)
	})

	t.Run("MissingChunks", func(t *testing.T) {
		_, err := NewReembedder(repos.Catalog, nil, embedder, nil, &strings.Builder{})
		assert.ErrorIs(t, err, ErrChunkRepositoryRequired)
	})

	t.Run("MissingEmbedder", func(t *testing.T) {
		_, err := NewReembedder(repos.Catalog, repos.Chunks, nil, nil, &strings.Builder{})
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestRunReplacesAllVectors(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	seedIndex(t, repos, 5)

	fresh := []float32{0, 1, 0}
	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = fresh
		}
		return vectors, nil
	}

	reembedder, err := NewReembedder(repos.Catalog, repos.Chunks, embedder, testConfig(), &strings.Builder{})
	require.NoError(t, err)

	stats, err := reembedder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Chunks)
	assert.Equal(t, 1, stats.Courses)

	err = repos.Chunks.ForEach(ctx, func(chunk *core.Chunk) error {
		assert.Equal(t, fresh, chunk.Vector)
		return nil
	})
	require.NoError(t, err)

	entry, err := repos.Catalog.GetByTitle(ctx, "Course A")
	require.NoError(t, err)
	assert.Equal(t, fresh, entry.Vector)
}

func TestRunPreservesChunkText(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	seedIndex(t, repos, 1)

	var embedded []string
	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		embedded = append(embedded, texts...)
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{1}
		}
		return vectors, nil
	}

	reembedder, err := NewReembedder(repos.Catalog, repos.Chunks, embedder, testConfig(), &strings.Builder{})
	require.NoError(t, err)

	_, err = reembedder.Run(ctx)
	require.NoError(t, err)

	// The contextual form gets embedded; stored text stays raw.
	assert.Contains(t, embedded, "Course Course A Lesson 1 content: chunk body")
	chunk, err := repos.Chunks.GetChunk(ctx, "Course A", 0)
	require.NoError(t, err)
	assert.Equal(t, "chunk body", chunk.Text)
}

func TestRunBatchesEmbeddingCalls(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	seedIndex(t, repos, 5)

	embedder := mock.NewEmbedder()
	reembedder, err := NewReembedder(repos.Catalog, repos.Chunks, embedder, testConfig(), &strings.Builder{})
	require.NoError(t, err)

	_, err = reembedder.Run(ctx)
	require.NoError(t, err)

	// 5 chunks at batch size 2 is 3 calls, plus 1 for the catalog.
	assert.Equal(t, 4, embedder.EmbedTextsCallCount())
}

func TestRunEmptyIndex(t *testing.T) {
	repos := setupRepos(t)
	var buf strings.Builder

	reembedder, err := NewReembedder(repos.Catalog, repos.Chunks, mock.NewEmbedder(), testConfig(), &buf)
	require.NoError(t, err)

	stats, err := reembedder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Chunks)
	assert.Contains(t, buf.String(), "nothing to re-embed")
}

func TestRunRetriesTransientFailures(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	seedIndex(t, repos, 1)

	calls := 0
	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("embedding service unavailable")
		}
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{1}
		}
		return vectors, nil
	}

	reembedder, err := NewReembedder(repos.Catalog, repos.Chunks, embedder, testConfig(), &strings.Builder{})
	require.NoError(t, err)

	_, err = reembedder.Run(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestRunPersistentFailureFails(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	seedIndex(t, repos, 1)

	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	reembedder, err := NewReembedder(repos.Catalog, repos.Chunks, embedder, testConfig(), &strings.Builder{})
	require.NoError(t, err)

	_, err = reembedder.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}
