package badger

import (
	"context"
	"testing"

	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repos.Close())
	})
	return repos
}

func intPtr(n int) *int {
	return &n
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("AddCourseAndGetByTitle", func(t *testing.T) {
		repos := setupRepos(t)

		entry := &core.CatalogEntry{
			Title:      "Introduction to Go",
			CourseLink: "https://example.com/go",
			Instructor: "Pat Doe",
			Lessons: []core.LessonRef{
				{Number: 0, Title: "Getting Started", Link: "https://example.com/go/0"},
			},
			Vector: []float32{1, 0, 0},
		}

		added, err := repos.Catalog.AddCourse(ctx, entry)
		require.NoError(t, err)
		assert.False(t, added.InsertedAt.IsZero())

		got, err := repos.Catalog.GetByTitle(ctx, "Introduction to Go")
		require.NoError(t, err)
		assert.Equal(t, entry.Title, got.Title)
		assert.Equal(t, entry.CourseLink, got.CourseLink)
		assert.Equal(t, entry.Instructor, got.Instructor)
		require.Len(t, got.Lessons, 1)
		assert.Equal(t, "Getting Started", got.Lessons[0].Title)
	})

	t.Run("GetByTitleNotFound", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Catalog.GetByTitle(ctx, "No Such Course")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("AddCourseOverwrites", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
			Title:      "Deep Learning",
			Instructor: "First",
			Vector:     []float32{1},
		})
		require.NoError(t, err)

		_, err = repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
			Title:      "Deep Learning",
			Instructor: "Second",
			Vector:     []float32{1},
		})
		require.NoError(t, err)

		count, err := repos.Catalog.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := repos.Catalog.GetByTitle(ctx, "Deep Learning")
		require.NoError(t, err)
		assert.Equal(t, "Second", got.Instructor)
	})

	t.Run("ListTitlesAndCount", func(t *testing.T) {
		repos := setupRepos(t)

		for _, title := range []string{"Course A", "Course B", "Course C"} {
			_, err := repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
				Title:  title,
				Vector: []float32{1},
			})
			require.NoError(t, err)
		}

		titles, err := repos.Catalog.ListTitles(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Course A", "Course B", "Course C"}, titles)

		count, err := repos.Catalog.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("FindSimilarOrdersByScore", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
			Title:  "Close Match",
			Vector: []float32{1, 0},
		})
		require.NoError(t, err)
		_, err = repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
			Title:  "Far Match",
			Vector: []float32{0, 1},
		})
		require.NoError(t, err)

		results, err := repos.Catalog.FindSimilar(ctx, []float32{1, 0}, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Close Match", results[0].Title)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("FindSimilarRespectsLimit", func(t *testing.T) {
		repos := setupRepos(t)

		for _, title := range []string{"One", "Two", "Three"} {
			_, err := repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
				Title:  title,
				Vector: []float32{1},
			})
			require.NoError(t, err)
		}

		results, err := repos.Catalog.FindSimilar(ctx, []float32{1}, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("FindSimilarRejectsBadLimit", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Catalog.FindSimilar(ctx, []float32{1}, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})

	t.Run("Clear", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Catalog.AddCourse(ctx, &core.CatalogEntry{
			Title:  "Transient",
			Vector: []float32{1},
		})
		require.NoError(t, err)

		require.NoError(t, repos.Catalog.Clear(ctx))

		count, err := repos.Catalog.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestChunkRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("AddChunksAndGetChunk", func(t *testing.T) {
		repos := setupRepos(t)

		chunks := []*core.Chunk{
			{
				CourseTitle:   "Course A",
				LessonNumber:  intPtr(1),
				SequenceIndex: 0,
				Text:          "first chunk",
				Vector:        []float32{1, 0},
			},
			{
				CourseTitle:   "Course A",
				LessonNumber:  intPtr(1),
				SequenceIndex: 1,
				Text:          "second chunk",
				Vector:        []float32{0, 1},
			},
		}

		added, err := repos.Chunks.AddChunks(ctx, chunks...)
		require.NoError(t, err)
		for _, chunk := range added {
			assert.False(t, chunk.InsertedAt.IsZero())
		}

		got, err := repos.Chunks.GetChunk(ctx, "Course A", 1)
		require.NoError(t, err)
		assert.Equal(t, "second chunk", got.Text)
		require.NotNil(t, got.LessonNumber)
		assert.Equal(t, 1, *got.LessonNumber)
	})

	t.Run("GetChunkNotFound", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Chunks.GetChunk(ctx, "Course A", 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("FindSimilarUnfiltered", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Chunks.AddChunks(ctx,
			&core.Chunk{CourseTitle: "Course A", SequenceIndex: 0, Text: "near", Vector: []float32{1, 0}},
			&core.Chunk{CourseTitle: "Course B", SequenceIndex: 0, Text: "far", Vector: []float32{0, 1}},
		)
		require.NoError(t, err)

		results, err := repos.Chunks.FindSimilar(ctx, []float32{1, 0}, storage.Filter{}, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "near", results[0].Chunk.Text)
	})

	t.Run("FindSimilarCourseFilter", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Chunks.AddChunks(ctx,
			&core.Chunk{CourseTitle: "Course A", SequenceIndex: 0, Text: "in course a", Vector: []float32{1}},
			&core.Chunk{CourseTitle: "Course B", SequenceIndex: 0, Text: "in course b", Vector: []float32{1}},
		)
		require.NoError(t, err)

		results, err := repos.Chunks.FindSimilar(ctx, []float32{1}, storage.Filter{CourseTitle: "Course B"}, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "in course b", results[0].Chunk.Text)
	})

	t.Run("FindSimilarLessonFilter", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Chunks.AddChunks(ctx,
			&core.Chunk{CourseTitle: "Course A", LessonNumber: intPtr(1), SequenceIndex: 0, Text: "lesson one", Vector: []float32{1}},
			&core.Chunk{CourseTitle: "Course A", LessonNumber: intPtr(2), SequenceIndex: 1, Text: "lesson two", Vector: []float32{1}},
			&core.Chunk{CourseTitle: "Course A", SequenceIndex: 2, Text: "preamble", Vector: []float32{1}},
		)
		require.NoError(t, err)

		results, err := repos.Chunks.FindSimilar(ctx, []float32{1}, storage.Filter{
			CourseTitle:  "Course A",
			LessonNumber: intPtr(2),
		}, 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "lesson two", results[0].Chunk.Text)
	})

	t.Run("FindSimilarRespectsLimit", func(t *testing.T) {
		repos := setupRepos(t)

		for i := 0; i < 5; i++ {
			_, err := repos.Chunks.AddChunks(ctx, &core.Chunk{
				CourseTitle:   "Course A",
				SequenceIndex: i,
				Text:          "chunk",
				Vector:        []float32{1},
			})
			require.NoError(t, err)
		}

		results, err := repos.Chunks.FindSimilar(ctx, []float32{1}, storage.Filter{}, 3)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("Clear", func(t *testing.T) {
		repos := setupRepos(t)

		_, err := repos.Chunks.AddChunks(ctx, &core.Chunk{
			CourseTitle:   "Course A",
			SequenceIndex: 0,
			Text:          "chunk",
			Vector:        []float32{1},
		})
		require.NoError(t, err)

		require.NoError(t, repos.Chunks.Clear(ctx))

		results, err := repos.Chunks.FindSimilar(ctx, []float32{1}, storage.Filter{}, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
