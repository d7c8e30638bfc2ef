package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("Building RAG Systems"), IDFromContent("Building RAG Systems"))
	})

	t.Run("DistinctContentDistinctIDs", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("Course A"), IDFromContent("Course B"))
	})

	t.Run("ChunkIDVariesWithSequence", func(t *testing.T) {
		assert.NotEqual(t, ChunkID("Course A", 0), ChunkID("Course A", 1))
	})
}

func TestContextualText(t *testing.T) {
	t.Run("WithLessonNumber", func(t *testing.T) {
		lesson := 3
		chunk := &Chunk{CourseTitle: "Course A", LessonNumber: &lesson, Text: "body"}
		assert.Equal(t, "Course Course A Lesson 3 content: body", chunk.ContextualText())
	})

	t.Run("PreambleChunk", func(t *testing.T) {
		chunk := &Chunk{CourseTitle: "Course A", Text: "body"}
		assert.Equal(t, "Course Course A content: body", chunk.ContextualText())
	})
}

func TestCourseCatalogEntry(t *testing.T) {
	course := &Course{
		Title:      "Course A",
		CourseLink: "https://example.com/a",
		Instructor: "Pat Doe",
		Lessons: []Lesson{
			{Number: 0, Title: "Intro", Link: "https://example.com/a/0", Body: "dropped"},
			{Number: 1, Title: "Depth", Body: "also dropped"},
		},
	}

	entry := course.CatalogEntry()
	assert.Equal(t, "Course A", entry.Title)
	assert.Equal(t, "https://example.com/a", entry.CourseLink)
	assert.Equal(t, "Pat Doe", entry.Instructor)
	assert.Equal(t, []LessonRef{
		{Number: 0, Title: "Intro", Link: "https://example.com/a/0"},
		{Number: 1, Title: "Depth"},
	}, entry.Lessons)
}

func TestCatalogEntryLessonLink(t *testing.T) {
	entry := &CatalogEntry{Lessons: []LessonRef{
		{Number: 0, Link: "https://example.com/0"},
		{Number: 2},
	}}

	t.Run("Found", func(t *testing.T) {
		link, ok := entry.LessonLink(0)
		assert.True(t, ok)
		assert.Equal(t, "https://example.com/0", link)
	})

	t.Run("FoundWithoutLink", func(t *testing.T) {
		link, ok := entry.LessonLink(2)
		assert.True(t, ok)
		assert.Empty(t, link)
	})

	t.Run("UnknownLesson", func(t *testing.T) {
		_, ok := entry.LessonLink(7)
		assert.False(t, ok)
	})
}

func TestSourceLabel(t *testing.T) {
	lesson := 4
	assert.Equal(t, "Course A - Lesson 4", Source{CourseTitle: "Course A", LessonNumber: &lesson}.Label())
	assert.Equal(t, "Course A", Source{CourseTitle: "Course A"}.Label())
}
